package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// PayoutReader defines read operations for payouts and their reports
type PayoutReader interface {
	// FindPayoutByID retrieves a payout by its ID.
	FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error)

	// ListPayoutsByTeacher lists a teacher's payouts, newest first. A nil period lists all.
	ListPayoutsByTeacher(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error)

	// FindReportByPayoutID retrieves the report of an issued payout.
	FindReportByPayoutID(ctx context.Context, payoutID string) (*domain.Report, error)
}

// PayoutWriter defines write operations for payouts and their reports
type PayoutWriter interface {
	SavePayout(ctx context.Context, payout domain.Payout) error

	// UpdatePayoutStatus moves a payout to status, recording when it was reversed.
	UpdatePayoutStatus(ctx context.Context, payoutID string, status domain.PayoutStatus, reversedAt *time.Time, updatedBy string) error

	SaveReport(ctx context.Context, report domain.Report) error

	// DeleteReport discards the report of a payout. Missing reports are ignored.
	DeleteReport(ctx context.Context, payoutID string) error
}

// PayoutTransactionSupport defines locking reads used inside transactions.
type PayoutTransactionSupport interface {
	FindPayoutForUpdate(ctx context.Context, payoutID string) (*domain.Payout, error)
}

// PayoutRepositoryFacade combines all payout-related repository interfaces
type PayoutRepositoryFacade interface {
	PayoutReader
	PayoutWriter
	PayoutTransactionSupport
}
