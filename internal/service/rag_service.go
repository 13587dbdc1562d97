package service

import (
	"context"
	"fmt"

	"course-rag-be/internal/dto"
	"course-rag-be/internal/pkg/logger"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/pkg/generator"
	"course-rag-be/pkg/tools"
)

type IRagService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// ragService orchestrates one question: session history in, generator call,
// exchange persisted, answer + sources out.
type ragService struct {
	generator   *generator.Generator
	toolManager *tools.Manager
	sessionRepo contract.SessionRepository
	logger      logger.ILogger
}

func NewRagService(
	gen *generator.Generator,
	toolManager *tools.Manager,
	sessionRepo contract.SessionRepository,
	sysLogger logger.ILogger,
) IRagService {
	return &ragService{
		generator:   gen,
		toolManager: toolManager,
		sessionRepo: sessionRepo,
		logger:      sysLogger,
	}
}

func (s *ragService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		created, err := s.sessionRepo.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		sessionID = created
	}

	history, err := s.sessionRepo.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}

	result, err := s.generator.Generate(ctx, req.Query, history, s.toolManager)
	if err != nil {
		s.logger.Error("rag", "generation failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	if err := s.sessionRepo.AddExchange(ctx, sessionID, req.Query, result.Answer); err != nil {
		// The answer is already produced; losing one history entry is
		// recoverable, so log and continue.
		s.logger.Warn("rag", "failed to persist exchange", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	res := &dto.QueryResponse{
		Answer:    result.Answer,
		Sources:   make([]dto.SourceDTO, 0, len(result.Sources)),
		SessionId: sessionID,
	}
	for _, src := range result.Sources {
		res.Sources = append(res.Sources, dto.SourceDTO{Text: src.Text, Link: src.Link})
	}

	s.logger.Info("rag", "query answered", map[string]interface{}{
		"session_id": sessionID,
		"sources":    len(res.Sources),
	})
	return res, nil
}

func (s *ragService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id, err := s.sessionRepo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &dto.CreateSessionResponse{SessionId: id}, nil
}

func (s *ragService) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Clear(ctx, sessionID)
}
