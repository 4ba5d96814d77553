package sessions

import (
	"context"
	"intake-service/internal/app/services/core/intake"
	"sync"
)

// sessionMemoryRepository keeps sessions in process memory. The intake
// usecase tests run against it instead of a redis instance.
type sessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*intake.SessionState
}

func NewSessionMemoryRepository() intake.SessionRepository {
	return &sessionMemoryRepository{
		sessions: make(map[string]*intake.SessionState),
	}
}

func (r *sessionMemoryRepository) SaveSession(_ context.Context, state *intake.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[state.SessionID] = state
	return nil
}

func (r *sessionMemoryRepository) FindSessionByID(_ context.Context, sessionID string) (*intake.SessionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID], nil
}

func (r *sessionMemoryRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
