package contract

import (
	"context"

	"course-rag-be/internal/entity"
)

// SessionRepository holds per-session conversation history, bounded to the
// last N exchanges. Backends: in-process cache (default) or Redis when the
// service runs with multiple replicas.
type SessionRepository interface {
	Create(ctx context.Context) (string, error)
	GetHistory(ctx context.Context, sessionID string) ([]entity.Exchange, error)
	AddExchange(ctx context.Context, sessionID, query, answer string) error
	Clear(ctx context.Context, sessionID string) error
}
