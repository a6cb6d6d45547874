package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout represents a row of the payouts table.
type Payout struct {
	PayoutID          string          `db:"payout_id"`
	TeacherID         string          `db:"teacher_id"`
	Period            string          `db:"period"` // YYYY-MM
	PeriodStart       time.Time       `db:"period_start"`
	PeriodEnd         time.Time       `db:"period_end"`
	ConsumedIncomeIDs []string        `db:"consumed_income_ids"`
	GrossEarnings     decimal.Decimal `db:"gross_earnings"`
	TeacherShare      decimal.Decimal `db:"teacher_share"`
	AcademyShare      decimal.Decimal `db:"academy_share"`
	Status            string          `db:"status"`
	ExpenseID         string          `db:"expense_id"`
	ReversedAt        *time.Time      `db:"reversed_at"`
	AuditFields
}

// ReportLine is one element of the payout_reports.student_breakdown JSONB array.
type ReportLine struct {
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	Class       string          `json:"class"`
	SubjectName string          `json:"subject_name"`
	FeeShare    decimal.Decimal `json:"fee_share"`
	IncomeIDs   []string        `json:"income_ids"`
}

// PayoutReport represents a row of the payout_reports table.
type PayoutReport struct {
	PayoutID         string          `db:"payout_id"`
	TeacherID        string          `db:"teacher_id"`
	Period           string          `db:"period"`
	StudentBreakdown []ReportLine    `db:"student_breakdown"` // JSONB
	GrossEarnings    decimal.Decimal `db:"gross_earnings"`
	TeacherShare     decimal.Decimal `db:"teacher_share"`
	AcademyShare     decimal.Decimal `db:"academy_share"`
	GeneratedAt      time.Time       `db:"generated_at"`
}
