package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/handlers/middleware"
	"github.com/wafr/wafradmin/internal/handlers/render"
	"github.com/wafr/wafradmin/internal/logger"
	"github.com/wafr/wafradmin/internal/models"
	"github.com/wafr/wafradmin/internal/statement"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	directoryService directoryService,
	builder statementBuilder,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	api := http.NewServeMux()

	// Session endpoints. Login and logout stay open: logout is unconditional
	// and the session probe answers 401 rather than guarding.
	api.Handle("POST /auth/login", handleLogin(authService, logger))
	api.Handle("POST /auth/logout", handleLogout(authService, logger))
	api.Handle("GET /auth/session", handleSession(authService))

	// Roster endpoints, all behind the guard
	api.Handle("GET /users", withAuth(handleSearchUsers(directoryService, logger)))
	api.Handle("GET /users/{id}", withAuth(handleGetUser(directoryService, logger)))
	api.Handle("GET /users/{id}/transactions", withAuth(handleUserTransactions(directoryService, logger)))
	api.Handle("POST /users/{id}/block", withAuth(handleBlockUser(directoryService, logger)))
	api.Handle("GET /users/{id}/export", withAuth(handleExportSummary(directoryService, builder, logger)))
	api.Handle("POST /users/{id}/export", withAuth(handleExportDownload(directoryService, builder, logger)))

	// Fallback: everything unmatched is a JSON 404
	api.Handle("/", handleNotFound())

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", handleNotFound())

	return chain(root,
		middleware.LoggerMiddleware(logger),
	)
}

func handleNotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.ServiceError(w, "Not found", http.StatusNotFound)
	})
}

type authService interface {
	// Login with the fixed credential pair
	// Has to return apperrors.ErrInvalidCredentials on mismatch
	Login(ctx context.Context, email string, password string) (models.Session, models.IssuedToken, error)

	// Drop the persisted session the token points at. Unconditional.
	Logout(ctx context.Context, access string) error

	// Resolve a token back to its operator
	Restore(ctx context.Context, access string) (models.Operator, error)

	// Authenticate a request from its Authorization header
	Auth(ctx context.Context, r *http.Request) (models.Operator, error)

	// Extract the bearer token from a request
	ReadAccessToken(r *http.Request) (string, error)
}

type directoryService interface {
	SearchUsersByPhone(ctx context.Context, query string) ([]models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	ToggleUserBlocked(ctx context.Context, id uuid.UUID, blocked bool) (models.User, error)
}

type statementBuilder interface {
	Build(user models.User, txs []models.Transaction) statement.Statement
	Render(w io.Writer, st statement.Statement) error
}
