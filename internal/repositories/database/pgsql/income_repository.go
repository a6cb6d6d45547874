package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rootReceiptConstraint is the partial unique index over receipt_id for rows
// that were not produced by a split.
const rootReceiptConstraint = "uq_incomes_root_receipt"

const incomeColumns = `income_id, student_id, amount, income_date, receipt_id, voided, payout_id,
		parent_income_id, superseded_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(pool *pgxpool.Pool, db querier) *PgxIncomeRepository {
	return &PgxIncomeRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

func scanIncome(row pgx.Row) (domain.Income, error) {
	var m models.Income
	err := row.Scan(
		&m.IncomeID,
		&m.StudentID,
		&m.Amount,
		&m.IncomeDate,
		&m.ReceiptID,
		&m.Voided,
		&m.PayoutID,
		&m.ParentIncomeID,
		&m.SupersededBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Income{}, err
	}
	return mapping.ToDomainIncome(m), nil
}

func (r *PgxIncomeRepository) queryIncomes(ctx context.Context, query string, args ...any) ([]domain.Income, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("failed to query incomes", err)
	}
	defer rows.Close()

	incomes := []domain.Income{}
	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan income row", err)
		}
		incomes = append(incomes, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("error iterating income rows", err)
	}
	return incomes, nil
}

func (r *PgxIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1;`
	inc, err := scanIncome(r.db.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIncomeNotFound, incomeID)
		}
		return nil, wrapDBError("failed to find income "+incomeID, err)
	}
	return &inc, nil
}

// ListIncomeByStudent returns a student's income rows ordered by date. Rows
// replaced by a split are only included on request.
func (r *PgxIncomeRepository) ListIncomeByStudent(ctx context.Context, studentID string, includeSuperseded bool) ([]domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + ` FROM incomes
		WHERE student_id = $1 AND ($2 OR superseded_by IS NULL)
		ORDER BY income_date, income_id;
	`
	return r.queryIncomes(ctx, query, studentID, includeSuperseded)
}

// SaveIncome inserts an income row. A root row reusing a receipt number is
// rejected with domain.ErrDuplicateReceipt.
func (r *PgxIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	m := mapping.ToModelIncome(income)
	query := `
		INSERT INTO incomes (` + incomeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.IncomeID,
		m.StudentID,
		m.Amount,
		m.IncomeDate,
		m.ReceiptID,
		m.Voided,
		m.PayoutID,
		m.ParentIncomeID,
		m.SupersededBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, rootReceiptConstraint) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReceipt, m.ReceiptID)
		}
		return wrapDBError("failed to save income "+m.IncomeID, err)
	}
	return nil
}

// UpdateIncomeLinks persists the payout link, void flag and supersession of
// an existing row. Amount, date and receipt are never rewritten.
func (r *PgxIncomeRepository) UpdateIncomeLinks(ctx context.Context, income domain.Income) error {
	query := `
		UPDATE incomes
		SET payout_id = $2, voided = $3, superseded_by = $4, last_updated_at = $5, last_updated_by = $6
		WHERE income_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		income.IncomeID,
		income.PayoutID,
		income.Voided,
		income.SupersededBy,
		income.LastUpdatedAt,
		income.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError("failed to update income "+income.IncomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrIncomeNotFound, income.IncomeID)
	}
	return nil
}

// ListOpenIncomeForUpdate locks a student's unconsumed, unvoided rows dated
// within [from, to), oldest first.
func (r *PgxIncomeRepository) ListOpenIncomeForUpdate(ctx context.Context, studentID string, from, to time.Time) ([]domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + ` FROM incomes
		WHERE student_id = $1
		  AND superseded_by IS NULL
		  AND voided = FALSE
		  AND payout_id IS NULL
		  AND income_date >= $2 AND income_date < $3
		ORDER BY income_date, income_id
		FOR UPDATE;
	`
	return r.queryIncomes(ctx, query, studentID, from, to)
}

// FindIncomesByIDsForUpdate locks the given rows. Missing ids are simply
// absent from the result.
func (r *PgxIncomeRepository) FindIncomesByIDsForUpdate(ctx context.Context, incomeIDs []string) (map[string]domain.Income, error) {
	out := make(map[string]domain.Income, len(incomeIDs))
	if len(incomeIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = ANY($1) FOR UPDATE;`
	incomes, err := r.queryIncomes(ctx, query, incomeIDs)
	if err != nil {
		return nil, err
	}
	for _, inc := range incomes {
		out[inc.IncomeID] = inc
	}
	return out, nil
}
