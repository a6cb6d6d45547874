package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
)

type studentRepository struct {
	run runner
}

var _ portsrepo.StudentRepositoryFacade = (*studentRepository)(nil)

func (r *studentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	var found *domain.Student
	err := r.run(func(tx *txState) error {
		s, ok := tx.students.get(studentID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrStudentNotFound, studentID)
		}
		found = &s
		return nil
	})
	return found, err
}

// FindStudentForUpdate records the row in the read set so that a concurrent
// commit to the same student aborts this transaction.
func (r *studentRepository) FindStudentForUpdate(ctx context.Context, studentID string) (*domain.Student, error) {
	return r.FindStudentByID(ctx, studentID)
}

func (r *studentRepository) ListStudents(ctx context.Context, filter portsrepo.StudentFilter, limit int, offset int) ([]domain.Student, error) {
	var out []domain.Student
	err := r.run(func(tx *txState) error {
		for _, s := range tx.students.scan() {
			if filter.ActiveOnly && !s.IsActive {
				continue
			}
			if filter.Class != "" && s.Class != filter.Class {
				continue
			}
			if filter.FeeStatus != nil && s.FeeStatus != *filter.FeeStatus {
				continue
			}
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if offset >= len(out) {
		return []domain.Student{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *studentRepository) ListStudentIDsDueForBilling(ctx context.Context, period domain.Period) ([]string, error) {
	var ids []string
	err := r.run(func(tx *txState) error {
		for _, s := range tx.students.scan() {
			if s.IsActive && !s.IsBilledFor(period) {
				ids = append(ids, s.StudentID)
			}
		}
		return nil
	})
	return ids, err
}

func (r *studentRepository) ListPaidStudentsByTeacherForUpdate(ctx context.Context, teacherID string) ([]domain.Student, error) {
	var out []domain.Student
	err := r.run(func(tx *txState) error {
		for _, s := range tx.students.scan() {
			if s.FeeStatus == domain.FeeStatusPaid && len(s.SharesForTeacher(teacherID)) > 0 {
				out = append(out, s)
			}
		}
		return nil
	})
	return out, err
}

func (r *studentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	return r.run(func(tx *txState) error {
		if _, exists := tx.students.get(student.StudentID); exists {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateStudent, student.StudentID)
		}
		tx.students.put(student.StudentID, student, true)
		return nil
	})
}

func (r *studentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	return r.run(func(tx *txState) error {
		if _, exists := tx.students.get(student.StudentID); !exists {
			return fmt.Errorf("%w: %s", domain.ErrStudentNotFound, student.StudentID)
		}
		tx.students.put(student.StudentID, student, false)
		return nil
	})
}
