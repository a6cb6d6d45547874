package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus is the lifecycle state of a payout.
type PayoutStatus string

const (
	PayoutIssued   PayoutStatus = "ISSUED"
	PayoutReversed PayoutStatus = "REVERSED"
)

// Payout is one teacher compensation issuance. ConsumedIncomeIDs is the exact
// snapshot of income it was built from, which is what makes reversal exact.
type Payout struct {
	PayoutID          string          `json:"payoutID"`
	TeacherID         string          `json:"teacherID"`
	Period            Period          `json:"period"`
	PeriodStart       time.Time       `json:"periodStart"`
	PeriodEnd         time.Time       `json:"periodEnd"`
	ConsumedIncomeIDs []string        `json:"consumedIncomeIDs"`
	GrossEarnings     decimal.Decimal `json:"grossEarnings"`
	TeacherShare      decimal.Decimal `json:"teacherShare"`
	AcademyShare      decimal.Decimal `json:"academyShare"`
	Status            PayoutStatus    `json:"status"`
	ExpenseID         string          `json:"expenseID"`
	ReversedAt        *time.Time      `json:"reversedAt,omitempty"`
	AuditFields
}

// ReportLine is one student-subject pair counted into a payout.
type ReportLine struct {
	StudentID   string          `json:"studentID"`
	StudentName string          `json:"studentName"`
	Class       string          `json:"class"`
	SubjectName string          `json:"subjectName"`
	FeeShare    decimal.Decimal `json:"feeShare"`
	IncomeIDs   []string        `json:"incomeIDs"`
}

// Report is the denormalized, printable breakdown of a payout.
type Report struct {
	PayoutID         string          `json:"payoutID"`
	TeacherID        string          `json:"teacherID"`
	Period           Period          `json:"period"`
	StudentBreakdown []ReportLine    `json:"studentBreakdown"`
	GrossEarnings    decimal.Decimal `json:"grossEarnings"`
	TeacherShare     decimal.Decimal `json:"teacherShare"`
	AcademyShare     decimal.Decimal `json:"academyShare"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// PayoutResult is the outcome of issuing a payout. Eligible is false when the
// teacher had no unconsumed paid fee shares; that is not an error.
type PayoutResult struct {
	Eligible bool    `json:"eligible"`
	Payout   *Payout `json:"payout,omitempty"`
	Report   *Report `json:"report,omitempty"`
}

// ReversalResult is the outcome of reversing a payout. AlreadyReversed marks
// an idempotent repeat that changed nothing.
type ReversalResult struct {
	PayoutID         string           `json:"payoutID"`
	AlreadyReversed  bool             `json:"alreadyReversed"`
	VoidedIncomeIDs  []string         `json:"voidedIncomeIDs,omitempty"`
	RestoredBalances []StudentBalance `json:"restoredBalances,omitempty"`
}
