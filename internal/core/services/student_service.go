package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/go-playground/validator/v10"
)

type studentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
	validate    *validator.Validate
}

// NewStudentService creates the student registry service.
func NewStudentService(repo portsrepo.StudentRepositoryFacade, txManager portsrepo.TransactionManager, opts ...Option) portssvc.StudentSvcFacade {
	svc := &studentService{
		BaseService: newBaseService(txManager),
		studentRepo: repo,
		validate:    validator.New(),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

func (s *studentService) validateRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	return nil
}

// normalizeFees rounds the monthly fee and every share to the currency unit
// and checks that the shares add up to the monthly fee.
func (s *studentService) normalizeFees(student *domain.Student) error {
	student.MonthlyFee = s.Policy.RoundMoney(student.MonthlyFee)
	for i := range student.Subjects {
		student.Subjects[i].SubjectName = strings.TrimSpace(student.Subjects[i].SubjectName)
		student.Subjects[i].FeeShare = s.Policy.RoundMoney(student.Subjects[i].FeeShare)
	}
	return student.ValidateFeeShares(s.Policy.Tolerance())
}

func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, actorID string) (*domain.Student, error) {
	if err := s.validateRequest(req); err != nil {
		s.LogWarn(ctx, "Invalid student registration", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	student := domain.Student{
		StudentID:   strings.TrimSpace(req.StudentID),
		Name:        req.Name,
		Class:       req.Class,
		Subjects:    dto.ToSubjectShares(req.Subjects),
		MonthlyFee:  req.MonthlyFee,
		FeeStatus:   domain.FeeStatusPaid,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(now, actorID),
	}
	if err := s.normalizeFees(&student); err != nil {
		s.LogWarn(ctx, "Fee shares rejected",
			slog.String("student_id", student.StudentID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		s.LogError(ctx, err, "Failed to save student", slog.String("student_id", student.StudentID))
		return nil, err
	}

	s.LogInfo(ctx, "Student registered",
		slog.String("student_id", student.StudentID),
		slog.String("class", student.Class))
	return &student, nil
}

func (s *studentService) GetStudent(ctx context.Context, studentID string) (*domain.Student, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	filter := portsrepo.StudentFilter{Class: params.Class}
	if params.FeeStatus != "" {
		status := domain.FeeStatus(params.FeeStatus)
		if !status.IsValid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown fee status %q", params.FeeStatus))
		}
		filter.FeeStatus = &status
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	students, err := s.studentRepo.ListStudents(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students")
		return nil, err
	}
	return students, nil
}

// UpdateFeeStructure replaces the fee shares inside a transaction so that a
// concurrent billing run or payment never sees a half-edited student. The
// outstanding balance is kept; only the status is re-derived.
func (s *studentService) UpdateFeeStructure(ctx context.Context, studentID string, req dto.UpdateFeeStructureRequest, actorID string) (*domain.Student, error) {
	if err := s.validateRequest(req); err != nil {
		s.LogWarn(ctx, "Invalid fee structure", slog.String("student_id", studentID), slog.String("error", err.Error()))
		return nil, err
	}

	var updated domain.Student
	err := s.runInTx(ctx, "update_fee_structure", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		student, err := tx.Students.FindStudentForUpdate(ctx, studentID)
		if err != nil {
			return err
		}
		now := s.now()
		student.MonthlyFee = req.MonthlyFee
		student.Subjects = dto.ToSubjectShares(req.Subjects)
		if req.IsActive != nil {
			student.IsActive = *req.IsActive
		}
		if err := s.normalizeFees(student); err != nil {
			return err
		}
		student.RecomputeStatus(s.Policy, now)
		student.Touch(now, actorID)
		if err := tx.Students.UpdateStudent(ctx, *student); err != nil {
			return err
		}
		updated = *student
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update fee structure", slog.String("student_id", studentID))
		return nil, err
	}

	s.LogInfo(ctx, "Fee structure updated",
		slog.String("student_id", studentID),
		slog.String("monthly_fee", updated.MonthlyFee.String()))
	return &updated, nil
}
