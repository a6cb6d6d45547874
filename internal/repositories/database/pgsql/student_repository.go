package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `student_id, name, class, subjects, monthly_fee, total_fee, fee_status,
		last_fee_generated_period, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxStudentRepository struct {
	BaseRepository
}

func newPgxStudentRepository(pool *pgxpool.Pool, db querier) *PgxStudentRepository {
	return &PgxStudentRepository{BaseRepository: newBaseRepository(pool, db)}
}

// Ensure PgxStudentRepository implements portsrepo.StudentRepositoryFacade
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

func scanStudent(row pgx.Row) (domain.Student, error) {
	var m models.Student
	var subjects []byte
	err := row.Scan(
		&m.StudentID,
		&m.Name,
		&m.Class,
		&subjects,
		&m.MonthlyFee,
		&m.TotalFee,
		&m.FeeStatus,
		&m.LastFeeGeneratedPeriod,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Student{}, err
	}
	if len(subjects) > 0 {
		if err := json.Unmarshal(subjects, &m.Subjects); err != nil {
			return domain.Student{}, fmt.Errorf("failed to decode subjects of student %s: %w", m.StudentID, err)
		}
	}
	return mapping.ToDomainStudent(m)
}

func (r *PgxStudentRepository) findOne(ctx context.Context, query string, studentID string) (*domain.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrStudentNotFound, studentID)
		}
		return nil, wrapDBError("failed to find student "+studentID, err)
	}
	return &s, nil
}

// FindStudentByID retrieves a student by roll number.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM students WHERE student_id = $1;`, studentID)
}

// FindStudentForUpdate retrieves and row-locks a student for the rest of the transaction.
func (r *PgxStudentRepository) FindStudentForUpdate(ctx context.Context, studentID string) (*domain.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM students WHERE student_id = $1 FOR UPDATE;`, studentID)
}

func (r *PgxStudentRepository) queryStudents(ctx context.Context, query string, args ...any) ([]domain.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("failed to query students", err)
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, wrapDBError("failed to scan student row", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("error iterating student rows", err)
	}
	return students, nil
}

// ListStudents returns students ordered by roll number.
func (r *PgxStudentRepository) ListStudents(ctx context.Context, filter portsrepo.StudentFilter, limit int, offset int) ([]domain.Student, error) {
	var conds []string
	var args []any
	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if filter.Class != "" {
		args = append(args, filter.Class)
		conds = append(conds, fmt.Sprintf("class = $%d", len(args)))
	}
	if filter.FeeStatus != nil {
		args = append(args, string(*filter.FeeStatus))
		conds = append(conds, fmt.Sprintf("fee_status = $%d", len(args)))
	}

	query := `SELECT ` + studentColumns + ` FROM students`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY student_id"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.queryStudents(ctx, query+";", args...)
}

// ListStudentIDsDueForBilling returns active students whose period stamp is
// older than the given period. A NULL stamp means never billed.
func (r *PgxStudentRepository) ListStudentIDsDueForBilling(ctx context.Context, period domain.Period) ([]string, error) {
	query := `
		SELECT student_id FROM students
		WHERE is_active = TRUE
		  AND (last_fee_generated_period IS NULL OR last_fee_generated_period < $1)
		ORDER BY student_id;
	`
	rows, err := r.db.Query(ctx, query, period.String())
	if err != nil {
		return nil, wrapDBError("failed to list students due for billing", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapDBError("failed to collect student ids", err)
	}
	return ids, nil
}

// ListPaidStudentsByTeacherForUpdate locks every PAID student with at least
// one subject taught by the teacher.
func (r *PgxStudentRepository) ListPaidStudentsByTeacherForUpdate(ctx context.Context, teacherID string) ([]domain.Student, error) {
	query := `
		SELECT ` + studentColumns + ` FROM students
		WHERE fee_status = $1
		  AND subjects @> jsonb_build_array(jsonb_build_object('teacher_id', $2::text))
		ORDER BY student_id
		FOR UPDATE;
	`
	return r.queryStudents(ctx, query, string(domain.FeeStatusPaid), teacherID)
}

// SaveStudent inserts a new student.
func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)
	subjects, err := json.Marshal(m.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects of student %s: %w", m.StudentID, err)
	}

	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.db.Exec(ctx, query,
		m.StudentID,
		m.Name,
		m.Class,
		subjects,
		m.MonthlyFee,
		m.TotalFee,
		m.FeeStatus,
		m.LastFeeGeneratedPeriod,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateStudent, m.StudentID)
		}
		return wrapDBError("failed to save student "+m.StudentID, err)
	}
	return nil
}

// UpdateStudent overwrites the mutable columns of a student.
func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)
	subjects, err := json.Marshal(m.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects of student %s: %w", m.StudentID, err)
	}

	query := `
		UPDATE students
		SET name = $2, class = $3, subjects = $4, monthly_fee = $5, total_fee = $6, fee_status = $7,
		    last_fee_generated_period = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE student_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.StudentID,
		m.Name,
		m.Class,
		subjects,
		m.MonthlyFee,
		m.TotalFee,
		m.FeeStatus,
		m.LastFeeGeneratedPeriod,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapDBError("failed to update student "+m.StudentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrStudentNotFound, m.StudentID)
	}
	return nil
}
