package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a row of the incomes table.
type Income struct {
	IncomeID       string          `db:"income_id"`
	StudentID      string          `db:"student_id"`
	Amount         decimal.Decimal `db:"amount"`
	IncomeDate     time.Time       `db:"income_date"`
	ReceiptID      string          `db:"receipt_id"`
	Voided         bool            `db:"voided"`
	PayoutID       *string         `db:"payout_id"`
	ParentIncomeID *string         `db:"parent_income_id"`
	SupersededBy   *string         `db:"superseded_by"`
	AuditFields
}
