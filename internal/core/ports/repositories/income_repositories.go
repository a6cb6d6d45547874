package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// IncomeReader defines read operations for income data
type IncomeReader interface {
	// FindIncomeByID retrieves a single income row.
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)

	// ListIncomeByStudent lists a student's income ordered by date. Superseded
	// rows (replaced by split children) are only included when includeSuperseded is set.
	ListIncomeByStudent(ctx context.Context, studentID string, includeSuperseded bool) ([]domain.Income, error)
}

// IncomeWriter defines write operations for income data
type IncomeWriter interface {
	// SaveIncome appends an income row. A second root row with the same receipt
	// ID fails with domain.ErrDuplicateReceipt.
	SaveIncome(ctx context.Context, income domain.Income) error

	// UpdateIncomeLinks persists the voided, payout and superseded markers of a row.
	// Amount, date and receipt are immutable.
	UpdateIncomeLinks(ctx context.Context, income domain.Income) error
}

// IncomeTransactionSupport defines locking reads used by the payout engine and reversal.
type IncomeTransactionSupport interface {
	// ListOpenIncomeForUpdate locks open income rows (effective, not voided, no payout)
	// of a student dated within [from, to), ordered by date then ID.
	ListOpenIncomeForUpdate(ctx context.Context, studentID string, from, to time.Time) ([]domain.Income, error)

	// FindIncomesByIDsForUpdate locks the given income rows.
	FindIncomesByIDsForUpdate(ctx context.Context, incomeIDs []string) (map[string]domain.Income, error)
}

// IncomeRepositoryFacade combines all income-related repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
	IncomeTransactionSupport
}
