package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseSource tells manual staff entries apart from payout-generated ones.
type ExpenseSource string

const (
	ExpenseSourceManual ExpenseSource = "MANUAL"
	ExpenseSourcePayout ExpenseSource = "PAYOUT"
)

// PayoutExpenseCategory is the category of expenses created for teacher payouts.
const PayoutExpenseCategory = "Salaries"

// Expense is an outgoing money entry of the institution.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Source      ExpenseSource   `json:"source"`
	PayoutID    *string         `json:"payoutID,omitempty"` // Set when Source is PAYOUT
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}

// IsPayoutExpense reports whether this expense belongs to a payout.
func (e Expense) IsPayoutExpense() bool {
	return e.Source == ExpenseSourcePayout
}

// IsDeleted reports whether the expense was tombstoned.
func (e Expense) IsDeleted() bool {
	return e.DeletedAt != nil
}

// ExpenseDeletion is the outcome of deleting an expense. Reversal is set only
// when the expense belonged to a payout, which deleting reverses.
type ExpenseDeletion struct {
	ExpenseID string
	Reversal  *ReversalResult
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	Source   *ExpenseSource
	Category string
	From     *time.Time
	To       *time.Time
}
