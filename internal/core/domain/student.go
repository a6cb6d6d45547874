package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SubjectShare is the portion of a student's monthly fee attributable to one
// subject and the teacher who teaches it.
type SubjectShare struct {
	SubjectName string          `json:"subjectName"`
	TeacherID   string          `json:"teacherID"`
	FeeShare    decimal.Decimal `json:"feeShare"`
}

// Student is the billing record of an enrolled student. The ledger owns
// TotalFee, FeeStatus and LastFeeGeneratedPeriod; they are never edited directly.
type Student struct {
	StudentID              string          `json:"studentID"` // Stable roll number
	Name                   string          `json:"name"`
	Class                  string          `json:"class"`
	Subjects               []SubjectShare  `json:"subjects"`
	MonthlyFee             decimal.Decimal `json:"monthlyFee"`
	TotalFee               decimal.Decimal `json:"totalFee"` // Current outstanding balance, never negative
	FeeStatus              FeeStatus       `json:"feeStatus"`
	LastFeeGeneratedPeriod Period          `json:"lastFeeGeneratedPeriod"`
	IsActive               bool            `json:"isActive"`
	AuditFields
}

// FeeShareTotal sums the fee shares of all subjects.
func (s Student) FeeShareTotal() decimal.Decimal {
	total := decimal.Zero
	for _, subj := range s.Subjects {
		total = total.Add(subj.FeeShare)
	}
	return total
}

// ValidateFeeShares enforces that the subject shares add up to the monthly fee
// within the given rounding tolerance.
func (s Student) ValidateFeeShares(tolerance decimal.Decimal) error {
	if s.MonthlyFee.IsNegative() {
		return fmt.Errorf("%w: monthly fee cannot be negative", ErrFeeShareMismatch)
	}
	for _, subj := range s.Subjects {
		if subj.FeeShare.IsNegative() {
			return fmt.Errorf("%w: fee share for %s is negative", ErrFeeShareMismatch, subj.SubjectName)
		}
	}
	diff := s.FeeShareTotal().Sub(s.MonthlyFee).Abs()
	if diff.GreaterThan(tolerance) {
		return fmt.Errorf("%w: shares total %s, monthly fee is %s", ErrFeeShareMismatch, s.FeeShareTotal().String(), s.MonthlyFee.String())
	}
	return nil
}

// SharesForTeacher returns the subjects of this student taught by teacherID.
func (s Student) SharesForTeacher(teacherID string) []SubjectShare {
	var shares []SubjectShare
	for _, subj := range s.Subjects {
		if subj.TeacherID == teacherID {
			shares = append(shares, subj)
		}
	}
	return shares
}

// IsBilledFor reports whether fees for period (or a later one) were already generated.
func (s Student) IsBilledFor(period Period) bool {
	return !s.LastFeeGeneratedPeriod.Before(period)
}

// RecomputeStatus re-derives FeeStatus from the current balance.
func (s *Student) RecomputeStatus(policy LedgerPolicy, now time.Time) {
	arrears := s.TotalFee.GreaterThan(s.MonthlyFee)
	overdue := arrears || policy.IsPastDue(s.LastFeeGeneratedPeriod, now)
	s.FeeStatus = DeriveFeeStatus(s.TotalFee, s.MonthlyFee, overdue)
}

// ApplyCharge bills one month of fees for period.
func (s *Student) ApplyCharge(period Period, policy LedgerPolicy, now time.Time) {
	s.TotalFee = s.TotalFee.Add(s.MonthlyFee)
	s.LastFeeGeneratedPeriod = period
	s.RecomputeStatus(policy, now)
}

// ApplyPayment reduces the balance, flooring at zero. Any excess is dropped
// rather than kept as credit.
func (s *Student) ApplyPayment(amount decimal.Decimal, policy LedgerPolicy, now time.Time) {
	s.TotalFee = decimal.Max(decimal.Zero, s.TotalFee.Sub(amount))
	s.RecomputeStatus(policy, now)
}

// RestoreBalance adds back amounts whose income was voided by a payout reversal.
func (s *Student) RestoreBalance(amount decimal.Decimal, policy LedgerPolicy, now time.Time) {
	s.TotalFee = s.TotalFee.Add(amount)
	s.RecomputeStatus(policy, now)
}

// StudentBalance is the read model returned to fee collection screens.
type StudentBalance struct {
	StudentID              string          `json:"studentID"`
	Name                   string          `json:"name"`
	Class                  string          `json:"class"`
	MonthlyFee             decimal.Decimal `json:"monthlyFee"`
	TotalFee               decimal.Decimal `json:"totalFee"`
	FeeStatus              FeeStatus       `json:"feeStatus"`
	LastFeeGeneratedPeriod Period          `json:"lastFeeGeneratedPeriod"`
}

// Balance projects the student onto its balance read model.
func (s Student) Balance() StudentBalance {
	return StudentBalance{
		StudentID:              s.StudentID,
		Name:                   s.Name,
		Class:                  s.Class,
		MonthlyFee:             s.MonthlyFee,
		TotalFee:               s.TotalFee,
		FeeStatus:              s.FeeStatus,
		LastFeeGeneratedPeriod: s.LastFeeGeneratedPeriod,
	}
}
