package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense, including tombstoned ones.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses returns non-deleted expenses, newest first, using token-based pagination.
	ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates description, amount, category and date.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// TombstoneExpense marks an expense as deleted.
	TombstoneExpense(ctx context.Context, expenseID string, deletedAt time.Time, deletedBy string) error
}

// ExpenseTransactionSupport defines locking reads used inside transactions.
type ExpenseTransactionSupport interface {
	FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseTransactionSupport
}
