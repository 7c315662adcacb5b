// Package opctx carries the authenticated operator through request contexts
package opctx

import (
	"context"

	"github.com/wafr/wafradmin/internal/models"
)

type ctxKey string

const operatorKey ctxKey = "operator"

// New returns a context with the operator attached
func New(ctx context.Context, op models.Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// FromContext extracts the operator set by the auth middleware
func FromContext(ctx context.Context) (models.Operator, bool) {
	op, ok := ctx.Value(operatorKey).(models.Operator)
	return op, ok
}
