package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/models"
)

// UserRepo is the record set: the in-memory collection acting as the sole
// "database" of the console
type UserRepo interface {
	// Empty query returns the first records in generation order,
	// otherwise filter by case-sensitive substring over phone
	SearchByPhone(ctx context.Context, query string) ([]models.User, error)

	// Return the record or apperrors.ErrUserNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)

	// Replace the record with the blocked flag set to the given value.
	// The only mutation in the system.
	// Has to return apperrors.ErrUserNotFound and change nothing for unknown ids.
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (models.User, error)

	// Number of records in the set
	Count(ctx context.Context) (int, error)
}

// SessionRepo keeps issued operator sessions
type SessionRepo interface {
	Save(ctx context.Context, session models.Session) error

	// Return the session or apperrors.ErrSessionNotFound
	Get(ctx context.Context, id uuid.UUID) (models.Session, error)

	// Delete must succeed for unknown ids too: logout is unconditional
	Delete(ctx context.Context, id uuid.UUID) error
}
