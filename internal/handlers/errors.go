package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrTxConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError logs err and writes the mapped status. Internal failures
// are reported with failureMsg instead of the raw error.
func respondWithError(c *gin.Context, err error, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failureMsg})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// actorFromContext returns the authenticated staff member or aborts with 401.
func actorFromContext(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// parsePeriodOrCurrent parses a YYYY-MM period, falling back to current when empty.
func parsePeriodOrCurrent(raw string, current domain.Period) (domain.Period, error) {
	if raw == "" {
		return current, nil
	}
	return domain.ParsePeriod(raw)
}
