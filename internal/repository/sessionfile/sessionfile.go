// Package sessionfile persists operator sessions to a single JSON file,
// the server-side stand-in for the one key the console kept in browser
// storage. Writes go through a temp file and rename so a crash mid-write
// cannot corrupt the store.
package sessionfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/models"
)

type snapshot struct {
	SavedAt  time.Time        `json:"saved_at"`
	Sessions []models.Session `json:"sessions"`
}

// SessionRepo is a file-backed session store. The whole store is loaded on
// construction and flushed on every change; session churn is a handful of
// operators, not a hot path.
type SessionRepo struct {
	mu       sync.Mutex
	path     string
	sessions map[uuid.UUID]models.Session
}

// New loads the store from path. A missing file is an empty store.
func New(path string) (*SessionRepo, error) {
	r := &SessionRepo{
		path:     path,
		sessions: make(map[uuid.UUID]models.Session),
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, nil
	case err != nil:
		return nil, fmt.Errorf("can't open session file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("can't decode session file: %w", err)
	}

	for _, s := range snap.Sessions {
		r.sessions[s.ID] = s
	}

	return r, nil
}

func (r *SessionRepo) Save(_ context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return r.flush()
}

func (r *SessionRepo) Get(_ context.Context, id uuid.UUID) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.Session{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (r *SessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return nil
	}

	delete(r.sessions, id)
	return r.flush()
}

// flush writes the store atomically. Callers must hold the mutex.
func (r *SessionRepo) flush() error {
	snap := snapshot{
		SavedAt:  time.Now(),
		Sessions: make([]models.Session, 0, len(r.sessions)),
	}
	for _, s := range r.sessions {
		snap.Sessions = append(snap.Sessions, s)
	}

	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("can't create session file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("can't encode session file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("can't close session file: %w", err)
	}

	return os.Rename(tmp, r.path)
}
