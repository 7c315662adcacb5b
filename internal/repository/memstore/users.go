// Package memstore holds the roster in process memory. The record set is
// seeded once at startup and lives until the process exits.
package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/models"
)

// An empty search returns this many records in generation order
const emptySearchLimit = 10

// UserRepo is a mutex-guarded ordered record set. Records are stored by
// value; readers always get snapshots that later writes cannot touch.
type UserRepo struct {
	mu    sync.RWMutex
	users []models.User
}

// NewUserRepo builds the record set from already generated records,
// preserving generation order
func NewUserRepo(users []models.User) *UserRepo {
	set := make([]models.User, len(users))
	copy(set, users)
	return &UserRepo{users: set}
}

func (r *UserRepo) SearchByPhone(_ context.Context, query string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if query == "" {
		limit := min(emptySearchLimit, len(r.users))
		found := make([]models.User, limit)
		copy(found, r.users[:limit])
		return found, nil
	}

	// Case-sensitive substring, no separator normalization
	found := make([]models.User, 0)
	for _, u := range r.users {
		if strings.Contains(u.Phone, query) {
			found = append(found, u)
		}
	}

	return found, nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, apperrors.ErrUserNotFound
}

func (r *UserRepo) SetBlocked(_ context.Context, id uuid.UUID, blocked bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID != id {
			continue
		}

		// Replace the whole record so snapshots held by callers keep the
		// pre-toggle value
		updated := u
		updated.Blocked = blocked
		r.users[i] = updated

		return updated, nil
	}

	return models.User{}, apperrors.ErrUserNotFound
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}
