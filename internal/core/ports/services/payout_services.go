package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// PayoutIssuerSvc computes and issues teacher payouts.
type PayoutIssuerSvc interface {
	// IssuePayout pays the teacher's share of collected fees for the period.
	// A result with Eligible=false and a nil error means nothing was payable.
	IssuePayout(ctx context.Context, teacherID string, period domain.Period, actorID string) (*domain.PayoutResult, error)
}

// PayoutReverserSvc undoes issued payouts.
type PayoutReverserSvc interface {
	// ReversePayout voids the consumed income, restores balances and removes
	// the payout's expense and report. Reversing twice is a no-op reported
	// through ReversalResult.AlreadyReversed.
	ReversePayout(ctx context.Context, payoutID string, actorID string) (*domain.ReversalResult, error)
}

// PayoutReaderSvc defines read operations for payouts
type PayoutReaderSvc interface {
	GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error)
	GetPayoutReport(ctx context.Context, payoutID string) (*domain.Report, error)
	ListPayouts(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error)
}

// PayoutSvcFacade combines all payout-related service interfaces
type PayoutSvcFacade interface {
	PayoutIssuerSvc
	PayoutReverserSvc
	PayoutReaderSvc
}
