package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/mapping"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, description, amount, category, expense_date, source, payout_id,
		deleted_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool, db querier) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.ExpenseDate,
		&m.Source,
		&m.PayoutID,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Expense{}, err
	}
	return mapping.ToDomainExpense(m), nil
}

func (r *PgxExpenseRepository) findOne(ctx context.Context, query string, expenseID string) (*domain.Expense, error) {
	e, err := scanExpense(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
		}
		return nil, wrapDBError("failed to find expense "+expenseID, err)
	}
	return &e, nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.findOne(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1;`, expenseID)
}

func (r *PgxExpenseRepository) FindExpenseForUpdate(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return r.findOne(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE expense_id = $1 FOR UPDATE;`, expenseID)
}

// ListExpenses returns live expenses newest first using keyset pagination
// over (expense_date, created_at, expense_id).
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter domain.ExpenseFilter, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	conds := []string{"deleted_at IS NULL"}
	var args []any
	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Source != nil {
		conds = append(conds, "source = "+addArg(string(*filter.Source)))
	}
	if filter.Category != "" {
		conds = append(conds, "category = "+addArg(filter.Category))
	}
	if filter.From != nil {
		conds = append(conds, "expense_date >= "+addArg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "expense_date < "+addArg(*filter.To))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidPageToken, err)
		}
		conds = append(conds, fmt.Sprintf("(expense_date, created_at, expense_id) < (%s, %s, %s)",
			addArg(cursor.SortKey), addArg(cursor.CreatedAt), addArg(cursor.ID)))
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY expense_date DESC, created_at DESC, expense_id DESC LIMIT ` + addArg(limit+1) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, wrapDBError("failed to list expenses", err)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0, limit+1)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, nil, wrapDBError("failed to scan expense row", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapDBError("error iterating expense rows", err)
	}

	if len(expenses) <= limit {
		return expenses, nil, nil
	}
	expenses = expenses[:limit]
	last := expenses[len(expenses)-1]
	token := pagination.EncodeCursor(pagination.Cursor{SortKey: last.Date, CreatedAt: last.CreatedAt, ID: last.ExpenseID})
	return expenses, &token, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Amount,
		m.Category,
		m.ExpenseDate,
		m.Source,
		m.PayoutID,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError("failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $2, amount = $3, category = $4, expense_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Amount,
		m.Category,
		m.ExpenseDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError("failed to update expense "+m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, m.ExpenseID)
	}
	return nil
}

// TombstoneExpense marks an expense deleted. Deleting twice is a no-op.
func (r *PgxExpenseRepository) TombstoneExpense(ctx context.Context, expenseID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE expenses
		SET deleted_at = COALESCE(deleted_at, $2), last_updated_at = $2, last_updated_by = $3
		WHERE expense_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, expenseID, deletedAt, deletedBy)
	if err != nil {
		return wrapDBError("failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
	}
	return nil
}
