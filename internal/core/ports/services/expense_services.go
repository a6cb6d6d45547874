package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses returns live expenses newest first, one page at a time.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for manual expenses
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error)

	// UpdateExpense edits a manual expense. Payout expenses are immutable.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error)

	// DeleteExpense removes an expense. Deleting a payout expense reverses the
	// payout and reports the reversal in the result.
	DeleteExpense(ctx context.Context, expenseID string, actorID string) (*domain.ExpenseDeletion, error)
}

// ExpenseSvcFacade combines expense read and write operations
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
