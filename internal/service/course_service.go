package service

import (
	"context"
	"fmt"

	"course-rag-be/internal/dto"
	"course-rag-be/pkg/vectorstore"
)

type ICourseService interface {
	GetStats(ctx context.Context) (*dto.CourseStatsResponse, error)
}

type courseService struct {
	store *vectorstore.VectorStore
}

func NewCourseService(store *vectorstore.VectorStore) ICourseService {
	return &courseService{store: store}
}

func (s *courseService) GetStats(ctx context.Context) (*dto.CourseStatsResponse, error) {
	count, err := s.store.CourseCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	titles, err := s.store.CourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list course titles: %w", err)
	}
	if titles == nil {
		titles = []string{}
	}

	return &dto.CourseStatsResponse{
		TotalCourses: count,
		CourseTitles: titles,
	}, nil
}
