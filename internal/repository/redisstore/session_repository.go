package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 1 * time.Hour

// SessionRepository stores chat history in Redis so that multiple replicas
// share one view of a session. Same bounded-window semantics as the
// in-memory store.
type SessionRepository struct {
	client     *redis.Client
	maxHistory int
}

func NewSessionRepository(client *redis.Client, maxHistory int) contract.SessionRepository {
	return &SessionRepository{
		client:     client,
		maxHistory: maxHistory,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

func (r *SessionRepository) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := r.client.Set(ctx, sessionKey(id), "[]", sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) GetHistory(ctx context.Context, sessionID string) ([]entity.Exchange, error) {
	raw, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session history: %w", err)
	}

	var exchanges []entity.Exchange
	if err := json.Unmarshal([]byte(raw), &exchanges); err != nil {
		return nil, fmt.Errorf("decode session history: %w", err)
	}
	return exchanges, nil
}

func (r *SessionRepository) AddExchange(ctx context.Context, sessionID, query, answer string) error {
	exchanges, err := r.GetHistory(ctx, sessionID)
	if err != nil {
		return err
	}

	exchanges = append(exchanges, entity.Exchange{Query: query, Answer: answer})
	if r.maxHistory > 0 && len(exchanges) > r.maxHistory {
		exchanges = exchanges[len(exchanges)-r.maxHistory:]
	}

	raw, err := json.Marshal(exchanges)
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(sessionID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session history: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
