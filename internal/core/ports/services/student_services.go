package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
)

// StudentReaderSvc defines read operations for the student registry
type StudentReaderSvc interface {
	// GetStudent retrieves a student by roll number.
	GetStudent(ctx context.Context, studentID string) (*domain.Student, error)

	// ListStudents retrieves students ordered by roll number.
	ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error)
}

// StudentWriterSvc defines write operations for the student registry
type StudentWriterSvc interface {
	// CreateStudent registers a student after validating the fee-share invariant.
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, actorID string) (*domain.Student, error)

	// UpdateFeeStructure replaces the monthly fee and subject shares of a student.
	UpdateFeeStructure(ctx context.Context, studentID string, req dto.UpdateFeeStructureRequest, actorID string) (*domain.Student, error)
}

// StudentSvcFacade combines all student registry interfaces
type StudentSvcFacade interface {
	StudentReaderSvc
	StudentWriterSvc
}
