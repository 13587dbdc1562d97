package controller

import (
	"course-rag-be/internal/dto"
	"course-rag-be/internal/pkg/serverutils"
	"course-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type chatController struct {
	ragService service.IRagService
}

func NewChatController(ragService service.IRagService) IChatController {
	return &chatController{
		ragService: ragService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("query", c.Query)
	h.Post("session", c.CreateSession)
	h.Delete("session/:id", c.ClearSession)
}

func (c *chatController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.Query(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.ragService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	if err := c.ragService.ClearSession(ctx.Context(), sessionID); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear session", nil))
}
