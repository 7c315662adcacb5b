package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/models"
)

// SessionRepo keeps sessions in memory only. Nothing survives a restart,
// which is fine for tests and for running without a state file.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[uuid.UUID]models.Session)}
}

func (r *SessionRepo) Save(_ context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepo) Get(_ context.Context, id uuid.UUID) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.Session{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
