package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/mapping"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool, db querier) *PgxActivityRepository {
	return &PgxActivityRepository{BaseRepository: newBaseRepository(pool, db)}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activities (activity_id, kind, entity_id, student_id, teacher_id, amount, message, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.ActivityID,
		m.Kind,
		m.EntityID,
		m.StudentID,
		m.TeacherID,
		m.Amount,
		m.Message,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return wrapDBError("failed to save activity "+m.ActivityID, err)
	}
	return nil
}

// ListActivities returns the activity log newest first.
func (r *PgxActivityRepository) ListActivities(ctx context.Context, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	query := `
		SELECT activity_id, kind, entity_id, student_id, teacher_id, amount, message, created_at, created_by
		FROM activities
	`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidPageToken, err)
		}
		query += ` WHERE (created_at, activity_id) < ($1, $2)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, activity_id DESC LIMIT $%d;`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, wrapDBError("failed to list activities", err)
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0, limit+1)
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(
			&m.ActivityID,
			&m.Kind,
			&m.EntityID,
			&m.StudentID,
			&m.TeacherID,
			&m.Amount,
			&m.Message,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, nil, wrapDBError("failed to scan activity row", err)
		}
		activities = append(activities, mapping.ToDomainActivity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapDBError("error iterating activity rows", err)
	}

	if len(activities) <= limit {
		return activities, nil, nil
	}
	activities = activities[:limit]
	last := activities[len(activities)-1]
	token := pagination.EncodeCursor(pagination.Cursor{SortKey: last.CreatedAt, CreatedAt: last.CreatedAt, ID: last.ActivityID})
	return activities, &token, nil
}
