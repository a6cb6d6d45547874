// Package accounting holds the money arithmetic shared by the payout engine
// and its reversal.
package accounting

import (
	"fmt"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Allocation describes which open income rows cover one fee share.
// Whole rows are consumed entirely. When the last needed row overshoots the
// share, Partial is set and only PartialAmount of it is consumed.
type Allocation struct {
	Whole         []domain.Income
	Partial       *domain.Income
	PartialAmount decimal.Decimal
}

// AllocateShare walks open income oldest first until the cumulative amount
// reaches share. ok is false when the rows cannot cover the share; nothing is
// allocated in that case. open must already be ordered by (date, id).
func AllocateShare(open []domain.Income, share decimal.Decimal) (alloc Allocation, ok bool) {
	if !share.IsPositive() {
		return Allocation{}, false
	}
	remaining := share
	for i := range open {
		inc := open[i]
		if !inc.IsOpen() || !inc.Amount.IsPositive() {
			continue
		}
		if inc.Amount.LessThanOrEqual(remaining) {
			alloc.Whole = append(alloc.Whole, inc)
			remaining = remaining.Sub(inc.Amount)
		} else {
			alloc.Partial = &inc
			alloc.PartialAmount = remaining
			remaining = decimal.Zero
		}
		if remaining.IsZero() {
			return alloc, true
		}
	}
	return Allocation{}, false
}

// Total is the amount consumed by the allocation.
func (a Allocation) Total() decimal.Decimal {
	total := a.PartialAmount
	for _, inc := range a.Whole {
		total = total.Add(inc.Amount)
	}
	return total
}

// ValidatePayoutTotals checks that gross earnings equal the fee shares of the
// report lines and that the teacher and academy shares add up to gross.
func ValidatePayoutTotals(payout domain.Payout, lines []domain.ReportLine) error {
	gross := decimal.Zero
	for _, line := range lines {
		if !line.FeeShare.IsPositive() {
			return fmt.Errorf("fee share for student %s subject %s must be positive", line.StudentID, line.SubjectName)
		}
		gross = gross.Add(line.FeeShare)
	}
	if !gross.Equal(payout.GrossEarnings) {
		return fmt.Errorf("gross earnings %s do not match fee shares total %s", payout.GrossEarnings.String(), gross.String())
	}
	if !payout.TeacherShare.Add(payout.AcademyShare).Equal(payout.GrossEarnings) {
		return fmt.Errorf("teacher share %s and academy share %s do not add up to gross %s",
			payout.TeacherShare.String(), payout.AcademyShare.String(), payout.GrossEarnings.String())
	}
	return nil
}

// SumByStudent totals income amounts per student.
func SumByStudent(incomes []domain.Income) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, inc := range incomes {
		sums[inc.StudentID] = sums[inc.StudentID].Add(inc.Amount)
	}
	return sums
}
