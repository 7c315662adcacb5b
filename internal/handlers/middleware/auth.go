package middleware

import (
	"context"
	"net/http"

	"github.com/wafr/wafradmin/internal/handlers/opctx"
	"github.com/wafr/wafradmin/internal/handlers/render"
	"github.com/wafr/wafradmin/internal/models"
)

type authService interface {
	Auth(ctx context.Context, r *http.Request) (models.Operator, error)
}

// AuthMiddleware is the route guard: a protected handler only runs once the
// request resolves to an authenticated operator, anyone else gets 401
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operator, err := as.Auth(r.Context(), r)
			if err != nil {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := opctx.New(r.Context(), operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
