package repositories

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// StudentFilter narrows student listings.
type StudentFilter struct {
	Class      string
	FeeStatus  *domain.FeeStatus
	ActiveOnly bool
}

// StudentReader defines read operations for student data
type StudentReader interface {
	// FindStudentByID retrieves a student by roll number.
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)

	// ListStudents retrieves a page of students ordered by roll number.
	ListStudents(ctx context.Context, filter StudentFilter, limit int, offset int) ([]domain.Student, error)

	// ListStudentIDsDueForBilling returns active students whose last generated period is before period.
	ListStudentIDsDueForBilling(ctx context.Context, period domain.Period) ([]string, error)
}

// StudentWriter defines write operations for student data
type StudentWriter interface {
	// SaveStudent persists a new student.
	SaveStudent(ctx context.Context, student domain.Student) error

	// UpdateStudent overwrites the mutable fields of an existing student.
	UpdateStudent(ctx context.Context, student domain.Student) error
}

// StudentTransactionSupport defines locking reads used inside transactions.
type StudentTransactionSupport interface {
	// FindStudentForUpdate retrieves a student and locks it until the transaction ends.
	FindStudentForUpdate(ctx context.Context, studentID string) (*domain.Student, error)

	// ListPaidStudentsByTeacherForUpdate locks every PAID student with at least one subject taught by teacherID.
	ListPaidStudentsByTeacherForUpdate(ctx context.Context, teacherID string) ([]domain.Student, error)
}

// StudentRepositoryFacade combines all student-related repository interfaces
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
	StudentTransactionSupport
}
