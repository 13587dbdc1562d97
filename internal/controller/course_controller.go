package controller

import (
	"course-rag-be/internal/pkg/serverutils"
	"course-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	GetStats(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Get("stats", c.GetStats)
}

func (c *courseController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.courseService.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get course stats", res))
}
