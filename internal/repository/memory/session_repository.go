package memory

import (
	"context"
	"sync"
	"time"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type sessionState struct {
	Exchanges []entity.Exchange
}

// SessionRepository keeps chat history in process memory. Sessions expire
// after an hour of inactivity; history is bounded to maxHistory exchanges
// with the oldest evicted first. The mutex covers the read-modify-write on
// the cached state, which the cache itself cannot make atomic.
type SessionRepository struct {
	mu         sync.Mutex
	cache      *cache.Cache
	maxHistory int
}

func NewSessionRepository(maxHistory int) contract.SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache:      c,
		maxHistory: maxHistory,
	}
}

func (r *SessionRepository) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	r.cache.Set(id, &sessionState{}, cache.DefaultExpiration)
	return id, nil
}

func (r *SessionRepository) GetHistory(ctx context.Context, sessionID string) ([]entity.Exchange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		state := x.(*sessionState)
		out := make([]entity.Exchange, len(state.Exchanges))
		copy(out, state.Exchanges)
		return out, nil
	}
	// Unknown or expired session: treated as empty, not an error.
	return nil, nil
}

func (r *SessionRepository) AddExchange(ctx context.Context, sessionID, query, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := &sessionState{}
	if x, found := r.cache.Get(sessionID); found {
		prev := x.(*sessionState)
		state.Exchanges = append(state.Exchanges, prev.Exchanges...)
	}

	state.Exchanges = append(state.Exchanges, entity.Exchange{Query: query, Answer: answer})
	if r.maxHistory > 0 && len(state.Exchanges) > r.maxHistory {
		state.Exchanges = state.Exchanges[len(state.Exchanges)-r.maxHistory:]
	}

	r.cache.Set(sessionID, state, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(sessionID)
	return nil
}
