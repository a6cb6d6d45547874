package models

import "github.com/shopspring/decimal"

// SubjectShare is one element of the students.subjects JSONB array.
type SubjectShare struct {
	SubjectName string          `json:"subject_name"`
	TeacherID   string          `json:"teacher_id"`
	FeeShare    decimal.Decimal `json:"fee_share"`
}

// Student represents a row of the students table.
type Student struct {
	StudentID              string          `db:"student_id"`
	Name                   string          `db:"name"`
	Class                  string          `db:"class"`
	Subjects               []SubjectShare  `db:"subjects"` // JSONB
	MonthlyFee             decimal.Decimal `db:"monthly_fee"`
	TotalFee               decimal.Decimal `db:"total_fee"`
	FeeStatus              string          `db:"fee_status"`
	LastFeeGeneratedPeriod *string         `db:"last_fee_generated_period"` // YYYY-MM, null before first billing
	IsActive               bool            `db:"is_active"`
	AuditFields
}
