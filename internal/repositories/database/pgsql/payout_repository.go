package pgsql

import (
	"context"
	"encoding/json"
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

const payoutColumns = `payout_id, teacher_id, period, period_start, period_end, consumed_income_ids,
		gross_earnings, teacher_share, academy_share, status, expense_id, reversed_at,
		created_at, created_by, last_updated_at, last_updated_by`

const reportColumns = `payout_id, teacher_id, period, student_breakdown, gross_earnings, teacher_share,
		academy_share, generated_at`

type PgxPayoutRepository struct {
	BaseRepository
}

func newPgxPayoutRepository(pool *pgxpool.Pool, db querier) *PgxPayoutRepository {
	return &PgxPayoutRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.PayoutRepositoryFacade = (*PgxPayoutRepository)(nil)

func scanPayout(row pgx.Row) (domain.Payout, error) {
	var m models.Payout
	err := row.Scan(
		&m.PayoutID,
		&m.TeacherID,
		&m.Period,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.ConsumedIncomeIDs,
		&m.GrossEarnings,
		&m.TeacherShare,
		&m.AcademyShare,
		&m.Status,
		&m.ExpenseID,
		&m.ReversedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Payout{}, err
	}
	return mapping.ToDomainPayout(m)
}

func (r *PgxPayoutRepository) findOne(ctx context.Context, query string, payoutID string) (*domain.Payout, error) {
	p, err := scanPayout(r.db.QueryRow(ctx, query, payoutID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPayoutNotFound, payoutID)
		}
		return nil, wrapDBError("failed to find payout "+payoutID, err)
	}
	return &p, nil
}

func (r *PgxPayoutRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error) {
	return r.findOne(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE payout_id = $1;`, payoutID)
}

func (r *PgxPayoutRepository) FindPayoutForUpdate(ctx context.Context, payoutID string) (*domain.Payout, error) {
	return r.findOne(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE payout_id = $1 FOR UPDATE;`, payoutID)
}

// ListPayoutsByTeacher returns a teacher's payouts newest first, optionally
// restricted to one period.
func (r *PgxPayoutRepository) ListPayoutsByTeacher(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error) {
	query := `
		SELECT ` + payoutColumns + ` FROM payouts
		WHERE teacher_id = $1 AND ($2 = '' OR period = $2)
		ORDER BY created_at DESC, payout_id DESC;
	`
	periodArg := ""
	if period != nil {
		periodArg = period.String()
	}
	rows, err := r.db.Query(ctx, query, teacherID, periodArg)
	if err != nil {
		return nil, wrapDBError("failed to list payouts for teacher "+teacherID, err)
	}
	defer rows.Close()

	payouts := []domain.Payout{}
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan payout row", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("error iterating payout rows", err)
	}
	return payouts, nil
}

func (r *PgxPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout) error {
	m := mapping.ToModelPayout(payout)
	query := `
		INSERT INTO payouts (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.PayoutID,
		m.TeacherID,
		m.Period,
		m.PeriodStart,
		m.PeriodEnd,
		m.ConsumedIncomeIDs,
		m.GrossEarnings,
		m.TeacherShare,
		m.AcademyShare,
		m.Status,
		m.ExpenseID,
		m.ReversedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError("failed to save payout "+m.PayoutID, err)
	}
	return nil
}

func (r *PgxPayoutRepository) UpdatePayoutStatus(ctx context.Context, payoutID string, status domain.PayoutStatus, reversedAt *time.Time, updatedBy string) error {
	query := `
		UPDATE payouts
		SET status = $2, reversed_at = $3, last_updated_at = COALESCE($3, NOW()), last_updated_by = $4
		WHERE payout_id = $1;
	`
	tag, err := r.db.Exec(ctx, query, payoutID, string(status), reversedAt, updatedBy)
	if err != nil {
		return wrapDBError("failed to update payout "+payoutID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPayoutNotFound, payoutID)
	}
	return nil
}

func (r *PgxPayoutRepository) FindReportByPayoutID(ctx context.Context, payoutID string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM payout_reports WHERE payout_id = $1;`
	var m models.PayoutReport
	var breakdown []byte
	err := r.db.QueryRow(ctx, query, payoutID).Scan(
		&m.PayoutID,
		&m.TeacherID,
		&m.Period,
		&breakdown,
		&m.GrossEarnings,
		&m.TeacherShare,
		&m.AcademyShare,
		&m.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, payoutID)
		}
		return nil, wrapDBError("failed to find report for payout "+payoutID, err)
	}
	if err := json.Unmarshal(breakdown, &m.StudentBreakdown); err != nil {
		return nil, fmt.Errorf("failed to decode report breakdown of payout %s: %w", payoutID, err)
	}
	report, err := mapping.ToDomainReport(m)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *PgxPayoutRepository) SaveReport(ctx context.Context, report domain.Report) error {
	m := mapping.ToModelPayoutReport(report)
	breakdown, err := json.Marshal(m.StudentBreakdown)
	if err != nil {
		return fmt.Errorf("failed to encode report breakdown of payout %s: %w", m.PayoutID, err)
	}
	query := `
		INSERT INTO payout_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.db.Exec(ctx, query,
		m.PayoutID,
		m.TeacherID,
		m.Period,
		breakdown,
		m.GrossEarnings,
		m.TeacherShare,
		m.AcademyShare,
		m.GeneratedAt,
	)
	if err != nil {
		return wrapDBError("failed to save report for payout "+m.PayoutID, err)
	}
	return nil
}

func (r *PgxPayoutRepository) DeleteReport(ctx context.Context, payoutID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM payout_reports WHERE payout_id = $1;`, payoutID); err != nil {
		return wrapDBError("failed to delete report for payout "+payoutID, err)
	}
	return nil
}
