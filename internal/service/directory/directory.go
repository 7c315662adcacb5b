// Package directory is the query layer over the roster record set: searches,
// lookups, per-user transaction history and the single blocked-flag mutation.
package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/models"
	"github.com/wafr/wafradmin/internal/repository"
)

// Every history request returns this many freshly generated transactions
const transactionsPerRequest = 20

// Generator produces the synthetic transaction history. Histories are not
// persisted anywhere: every request is a new random sample, mirroring the
// console's mock backend.
type Generator interface {
	Transactions(userID uuid.UUID, count int) []models.Transaction
}

type DirectoryService struct {
	userRepo repository.UserRepo
	gen      Generator
}

func NewService(userRepo repository.UserRepo, gen Generator) (*DirectoryService, error) {
	if userRepo == nil || gen == nil {
		return nil, fmt.Errorf("user repo and generator must not be nil")
	}

	return &DirectoryService{
		userRepo: userRepo,
		gen:      gen,
	}, nil
}

// SearchUsersByPhone filters the roster by phone substring. An empty query
// returns the head of the roster; an empty result is a valid answer.
func (s *DirectoryService) SearchUsersByPhone(ctx context.Context, query string) ([]models.User, error) {
	users, err := s.userRepo.SearchByPhone(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't search users. Err: %w", err)
	}

	return users, nil
}

// GetUserByID returns the record or apperrors.ErrUserNotFound
func (s *DirectoryService) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserTransactions returns a fresh history sample for the user, newest
// first. No existence check is made against the roster.
func (s *DirectoryService) GetUserTransactions(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return s.gen.Transactions(userID, transactionsPerRequest), nil
}

// ToggleUserBlocked sets the blocked flag and returns the updated record,
// or apperrors.ErrUserNotFound. The only mutation in the system.
func (s *DirectoryService) ToggleUserBlocked(ctx context.Context, id uuid.UUID, blocked bool) (models.User, error) {
	return s.userRepo.SetBlocked(ctx, id, blocked)
}
