package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/handlers/render"
	"github.com/wafr/wafradmin/internal/logger"
	"github.com/wafr/wafradmin/internal/models"
)

type userResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Balance    float64   `json:"balance"`
	Blocked    bool      `json:"blocked"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

func toUserResponse(u models.User) userResponse {
	balance, _ := u.Balance.Float64()
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Balance:    balance,
		Blocked:    u.Blocked,
		CreatedAt:  u.CreatedAt,
		LastActive: u.LastActive,
	}
}

// userIDFromPath parses the {id} path segment. A malformed id can never
// exist in the roster, so it reads as not found.
func userIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrUserNotFound
	}
	return id, nil
}

func handleSearchUsers(directory directoryService, l logger.Logger) http.Handler {
	type response struct {
		Users []userResponse `json:"users"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("phone")

		users, err := directory.SearchUsersByPhone(r.Context(), query)
		if err != nil {
			l.Error("Failed to search users", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := response{Users: make([]userResponse, 0, len(users))}
		for _, u := range users {
			res.Users = append(res.Users, toUserResponse(u))
		}

		render.JSON(w, res)
	})
}

func handleGetUser(directory directoryService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromPath(r)
		if err != nil {
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		}

		user, err := directory.GetUserByID(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to get user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUserTransactions(directory directoryService, l logger.Logger) http.Handler {
	type transaction struct {
		ID          uuid.UUID                `json:"id"`
		Amount      float64                  `json:"amount"`
		Kind        models.TransactionKind   `json:"kind"`
		Status      models.TransactionStatus `json:"status"`
		Description string                   `json:"description"`
		Date        time.Time                `json:"date"`
	}
	type response struct {
		Transactions []transaction `json:"transactions"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromPath(r)
		if err != nil {
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		}

		txs, err := directory.GetUserTransactions(r.Context(), id)
		if err != nil {
			l.Error("Failed to get transactions", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		res := response{Transactions: make([]transaction, 0, len(txs))}
		for _, tx := range txs {
			amount, _ := tx.Amount.Float64()
			res.Transactions = append(res.Transactions, transaction{
				ID:          tx.ID,
				Amount:      amount,
				Kind:        tx.Kind,
				Status:      tx.Status,
				Description: tx.Description,
				Date:        tx.Date,
			})
		}

		render.JSON(w, res)
	})
}

func handleBlockUser(directory directoryService, l logger.Logger) http.Handler {
	type request struct {
		// Pointer so explicit false passes the required check
		Blocked *bool `json:"blocked" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromPath(r)
		if err != nil {
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := directory.ToggleUserBlocked(r.Context(), id, *data.Blocked)

		switch {
		case err == nil:
			render.JSON(w, toUserResponse(user))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to toggle blocked flag", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
