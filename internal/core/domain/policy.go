package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerPolicy carries the configurable money and calendar rules of the ledger.
type LedgerPolicy struct {
	TeacherSharePercent decimal.Decimal // share of gross earnings paid to the teacher, e.g. 70
	Precision           int32           // decimal places of the currency unit
	DueDay              int             // day of the billing month after which a balance is overdue
	Location            *time.Location  // timezone used to evaluate periods and due dates
}

// DefaultLedgerPolicy returns the 70/30 split, whole currency units, due on the 10th.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		TeacherSharePercent: decimal.NewFromInt(70),
		Precision:           0,
		DueDay:              10,
		Location:            time.UTC,
	}
}

func (p LedgerPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// RoundMoney rounds an amount to the currency unit.
func (p LedgerPolicy) RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(p.Precision)
}

// Tolerance is one currency rounding unit.
func (p LedgerPolicy) Tolerance() decimal.Decimal {
	return decimal.New(1, -p.Precision)
}

// SplitEarnings splits gross earnings so that teacher + academy == gross exactly.
// The teacher share is rounded to the currency unit and the academy absorbs the remainder.
func (p LedgerPolicy) SplitEarnings(gross decimal.Decimal) (teacherShare, academyShare decimal.Decimal) {
	teacherShare = p.RoundMoney(gross.Mul(p.TeacherSharePercent).Div(decimal.NewFromInt(100)))
	academyShare = gross.Sub(teacherShare)
	return teacherShare, academyShare
}

// CurrentPeriod is the billing period containing now.
func (p LedgerPolicy) CurrentPeriod(now time.Time) Period {
	return PeriodOf(now.In(p.location()))
}

// PeriodBounds returns [start, end) of a period in the policy timezone.
func (p LedgerPolicy) PeriodBounds(period Period) (time.Time, time.Time) {
	return period.Start(p.location()), period.End(p.location())
}

// IsPastDue reports whether the due date of the billing period has passed at now.
func (p LedgerPolicy) IsPastDue(period Period, now time.Time) bool {
	if period.IsZero() {
		return false
	}
	return !now.Before(period.DueDate(p.DueDay, p.location()))
}
