package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// FeeSvcFacade bills students for a period.
type FeeSvcFacade interface {
	// GenerateMonthlyFees charges one monthly fee to every active student not
	// yet billed for the period and returns how many were billed. Calling it
	// again for the same period bills nobody.
	GenerateMonthlyFees(ctx context.Context, period domain.Period) (int, error)

	// CurrentPeriod returns the billing period containing the service clock's now.
	CurrentPeriod() domain.Period
}
