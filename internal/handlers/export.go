package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/wafr/wafradmin/internal/apperrors"
	"github.com/wafr/wafradmin/internal/handlers/render"
	"github.com/wafr/wafradmin/internal/logger"
)

// handleExportSummary describes what an export would contain: the user,
// the sampled history, its period and formatted totals
func handleExportSummary(directory directoryService, builder statementBuilder, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromPath(r)
		if err != nil {
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		}

		user, err := directory.GetUserByID(r.Context(), id)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		case err != nil:
			l.Error("Failed to get user for export", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		txs, err := directory.GetUserTransactions(r.Context(), id)
		if err != nil {
			l.Error("Failed to get transactions for export", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, builder.Build(user, txs))
	})
}

// handleExportDownload generates the statement document and streams it as an
// attachment. The console's PDF step was always simulated; the text document
// is the artifact actually produced.
func handleExportDownload(directory directoryService, builder statementBuilder, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromPath(r)
		if err != nil {
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		}

		user, err := directory.GetUserByID(r.Context(), id)
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
			return
		case err != nil:
			l.Error("Failed to get user for export", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		txs, err := directory.GetUserTransactions(r.Context(), id)
		if err != nil {
			l.Error("Failed to get transactions for export", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Render to a buffer first so a failure can still become a JSON error
		var buf bytes.Buffer
		if err := builder.Render(&buf, builder.Build(user, txs)); err != nil {
			l.Error("Failed to render statement", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "transactions-"+id.String()+".txt"))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			l.Error("Failed to write statement", "error", err)
		}
	})
}
