package domain

import (
	"errors"
	"fmt"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
)

var (
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrInvalidPeriod          = fmt.Errorf("%w: invalid billing period", apperrors.ErrValidation)
	ErrFeeShareMismatch       = fmt.Errorf("%w: subject fee shares must sum to the monthly fee", apperrors.ErrValidation)
	ErrInvalidPageToken       = fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
	ErrStudentNotFound        = fmt.Errorf("%w: student not found", apperrors.ErrNotFound)
	ErrPayoutNotFound         = fmt.Errorf("%w: payout not found", apperrors.ErrNotFound)
	ErrExpenseNotFound        = fmt.Errorf("%w: expense not found", apperrors.ErrNotFound)
	ErrReportNotFound         = fmt.Errorf("%w: payout report not found", apperrors.ErrNotFound)
	ErrIncomeNotFound         = fmt.Errorf("%w: income not found", apperrors.ErrNotFound)
	ErrDuplicateReceipt       = fmt.Errorf("%w: receipt already recorded", apperrors.ErrDuplicate)
	ErrDuplicateStudent       = fmt.Errorf("%w: student roll number already registered", apperrors.ErrDuplicate)
	ErrPayoutExpenseImmutable = fmt.Errorf("%w: payout expenses can only be removed by reversing the payout", apperrors.ErrConflict)
	ErrInactiveStudent        = fmt.Errorf("%w: student is not active", apperrors.ErrConflict)
)

// ErrConcurrentModification is surfaced when a transaction kept conflicting
// with concurrent writers after all retries were spent.
var ErrConcurrentModification = errors.New("concurrent modification: retries exhausted")
