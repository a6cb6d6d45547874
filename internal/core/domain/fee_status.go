package domain

import "github.com/shopspring/decimal"

// FeeStatus is the derived payment state of a student's outstanding balance.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "PENDING"
	FeeStatusPartial FeeStatus = "PARTIAL"
	FeeStatusPaid    FeeStatus = "PAID"
	FeeStatusOverdue FeeStatus = "OVERDUE"
)

// IsValid reports whether s is one of the known statuses.
func (s FeeStatus) IsValid() bool {
	switch s {
	case FeeStatusPending, FeeStatusPartial, FeeStatusPaid, FeeStatusOverdue:
		return true
	}
	return false
}

// DeriveFeeStatus is the single transition function for FeeStatus.
//
//   - a zero balance is PAID
//   - a positive balance that is overdue (due date passed, or arrears carried
//     over from an earlier period) is OVERDUE
//   - a balance below one month's fee is PARTIAL
//   - otherwise the month is untouched and PENDING
func DeriveFeeStatus(balance, monthlyFee decimal.Decimal, overdue bool) FeeStatus {
	switch {
	case !balance.IsPositive():
		return FeeStatusPaid
	case overdue:
		return FeeStatusOverdue
	case balance.LessThan(monthlyFee):
		return FeeStatusPartial
	default:
		return FeeStatusPending
	}
}
