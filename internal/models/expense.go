package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	ExpenseDate time.Time       `db:"expense_date"`
	Source      string          `db:"source"`
	PayoutID    *string         `db:"payout_id"`
	DeletedAt   *time.Time      `db:"deleted_at"`
	AuditFields
}
