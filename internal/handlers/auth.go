package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/handlers/render"
	"github.com/wafr/wafradmin/internal/logger"
	"github.com/wafr/wafradmin/internal/models"
)

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Token     string          `json:"token"`
		ExpiresAt time.Time       `json:"expires_at"`
		Operator  models.Operator `json:"operator"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, token, err := authService.Login(r.Context(), data.Email, data.Password)

		switch {
		case err == nil:
			render.JSON(w, response{
				Token:     token.Value,
				ExpiresAt: token.ExpiresAt,
				Operator:  session.Operator,
			})
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.ServiceError(w, "Invalid email or password", http.StatusUnauthorized)
		default:
			l.Error("Failed to login", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// handleLogout ends the session unconditionally: a missing or mangled token
// still leaves the caller anonymous with a success response
func handleLogout(authService authService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, err := authService.ReadAccessToken(r)
		if err != nil {
			render.JSON(w, response{Message: "Logged out"})
			return
		}

		if err := authService.Logout(r.Context(), access); err != nil {
			l.Error("Failed to logout", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{Message: "Logged out"})
	})
}

// handleSession is the restore path: the token alone decides whether the
// caller is still authenticated
func handleSession(authService authService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, err := authService.ReadAccessToken(r)
		if err != nil {
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		operator, err := authService.Restore(r.Context(), access)
		if err != nil {
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		render.JSON(w, operator)
	})
}
