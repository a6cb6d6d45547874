package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/pagination"
)

type expenseRepository struct {
	run runner
}

var _ portsrepo.ExpenseRepositoryFacade = (*expenseRepository)(nil)

func (r *expenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	var found *domain.Expense
	err := r.run(func(tx *txState) error {
		e, ok := tx.expenses.get(expenseID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
		}
		found = &e
		return nil
	})
	return found, err
}

func (r *expenseRepository) FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.FindExpenseByID(ctx, expenseID)
}

func matchesExpenseFilter(e domain.Expense, filter domain.ExpenseFilter) bool {
	if e.IsDeleted() {
		return false
	}
	if filter.Source != nil && e.Source != *filter.Source {
		return false
	}
	if filter.Category != "" && e.Category != filter.Category {
		return false
	}
	if filter.From != nil && e.Date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !e.Date.Before(*filter.To) {
		return false
	}
	return true
}

// ListExpenses returns live expenses newest first. A nil next token means the
// last page was reached.
func (r *expenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidPageToken, err)
		}
		cursor = &c
	}

	var rows []domain.Expense
	err := r.run(func(tx *txState) error {
		for _, e := range tx.expenses.scan() {
			if matchesExpenseFilter(e, filter) {
				rows = append(rows, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ExpenseID > b.ExpenseID
	})

	page := make([]domain.Expense, 0, limit)
	for _, e := range rows {
		if cursor != nil && !cursor.Follows(e.Date, e.CreatedAt, e.ExpenseID) {
			continue
		}
		page = append(page, e)
	}

	if len(page) <= limit {
		return page, nil, nil
	}
	page = page[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{SortKey: last.Date, CreatedAt: last.CreatedAt, ID: last.ExpenseID})
	return page, &token, nil
}

func (r *expenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return r.run(func(tx *txState) error {
		if _, exists := tx.expenses.get(expense.ExpenseID); exists {
			return fmt.Errorf("expense %s already exists", expense.ExpenseID)
		}
		tx.expenses.put(expense.ExpenseID, expense, true)
		return nil
	})
}

func (r *expenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return r.run(func(tx *txState) error {
		current, ok := tx.expenses.get(expense.ExpenseID)
		if !ok || current.IsDeleted() {
			return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expense.ExpenseID)
		}
		tx.expenses.put(expense.ExpenseID, expense, false)
		return nil
	})
}

func (r *expenseRepository) TombstoneExpense(ctx context.Context, expenseID string, deletedAt time.Time, deletedBy string) error {
	return r.run(func(tx *txState) error {
		current, ok := tx.expenses.get(expenseID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
		}
		if current.IsDeleted() {
			return nil
		}
		current.DeletedAt = &deletedAt
		current.Touch(deletedAt, deletedBy)
		tx.expenses.put(expenseID, current, false)
		return nil
	})
}
