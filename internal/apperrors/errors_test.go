package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	driverErr := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		target   error
		wantCode int
	}{
		{name: "not found", err: apperrors.NewNotFoundError("student 7 not found"), target: apperrors.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "duplicate", err: apperrors.NewConflictError("receipt R1 exists"), target: apperrors.ErrDuplicate, wantCode: http.StatusConflict},
		{name: "validation", err: apperrors.NewValidationFailedError("bad input"), target: apperrors.ErrValidation, wantCode: http.StatusBadRequest},
		{name: "storage", err: apperrors.NewStorageError("failed to insert income", driverErr), target: apperrors.ErrStorage, wantCode: http.StatusInternalServerError},
		{name: "tx conflict", err: apperrors.NewTxConflictError("serialization failure", driverErr), target: apperrors.ErrTxConflict, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)

			var appErr *apperrors.AppError
			if assert.ErrorAs(t, wrapped, &appErr) {
				assert.Equal(t, tt.wantCode, appErr.Code)
			}
		})
	}
}

func TestStorageErrorKeepsDriverCause(t *testing.T) {
	driverErr := errors.New("connection reset")
	err := apperrors.NewStorageError("failed to commit", driverErr)

	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "failed to commit")
	assert.Contains(t, err.Error(), "connection reset")
}
