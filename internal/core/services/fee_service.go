package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultFeeGenerationWorkers bounds how many students are billed concurrently.
const DefaultFeeGenerationWorkers = 8

type feeService struct {
	BaseService
	studentRepo portsrepo.StudentReader
	workers     int
}

// FeeServiceOption configures the fee generator.
type FeeServiceOption func(*feeService)

// WithFeeWorkers sets the size of the billing worker pool.
func WithFeeWorkers(n int) FeeServiceOption {
	return func(s *feeService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithFeeBaseOptions applies shared service options to the fee generator.
func WithFeeBaseOptions(opts ...Option) FeeServiceOption {
	return func(s *feeService) {
		s.BaseService.apply(opts)
	}
}

// NewFeeService creates the monthly fee generator.
func NewFeeService(studentRepo portsrepo.StudentReader, txManager portsrepo.TransactionManager, options ...FeeServiceOption) portssvc.FeeSvcFacade {
	svc := &feeService{
		BaseService: newBaseService(txManager),
		studentRepo: studentRepo,
		workers:     DefaultFeeGenerationWorkers,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

func (s *feeService) CurrentPeriod() domain.Period {
	return s.Policy.CurrentPeriod(s.Now())
}

// GenerateMonthlyFees bills every active student that has not been billed for
// period yet. Each student is billed in its own transaction that re-checks
// the period stamp under lock, so overlapping runs never double bill.
func (s *feeService) GenerateMonthlyFees(ctx context.Context, period domain.Period) (int, error) {
	if period.IsZero() {
		return 0, domain.ErrInvalidPeriod
	}
	if current := s.CurrentPeriod(); current.Before(period) {
		return 0, fmt.Errorf("%w: %s is after the current period %s", domain.ErrInvalidPeriod, period, current)
	}

	due, err := s.studentRepo.ListStudentIDsDueForBilling(ctx, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students due for billing", slog.String("period", period.String()))
		return 0, err
	}
	if len(due) == 0 {
		s.LogDebug(ctx, "No students due for billing", slog.String("period", period.String()))
		return 0, nil
	}

	var (
		billed int64
		mu     sync.Mutex
		errs   []error
		g      errgroup.Group
	)
	g.SetLimit(s.workers)
	for _, studentID := range due {
		studentID := studentID
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			charged, err := s.billStudent(ctx, studentID, period)
			if err != nil {
				s.LogError(ctx, err, "Failed to bill student",
					slog.String("student_id", studentID),
					slog.String("period", period.String()))
				mu.Lock()
				errs = append(errs, fmt.Errorf("student %s: %w", studentID, err))
				mu.Unlock()
				return nil
			}
			if charged {
				atomic.AddInt64(&billed, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	s.LogInfo(ctx, "Monthly fees generated",
		slog.String("period", period.String()),
		slog.Int("candidates", len(due)),
		slog.Int64("billed", billed),
		slog.Int("failed", len(errs)))
	return int(billed), errors.Join(errs...)
}

// billStudent charges one month to a student. It reports false when another
// run already billed the period or the student was deactivated meanwhile.
func (s *feeService) billStudent(ctx context.Context, studentID string, period domain.Period) (bool, error) {
	var (
		charged  bool
		activity domain.Activity
	)
	err := s.runInTx(ctx, "generate_monthly_fees", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		charged = false
		student, err := tx.Students.FindStudentForUpdate(ctx, studentID)
		if err != nil {
			return err
		}
		if !student.IsActive || student.IsBilledFor(period) {
			return nil
		}

		now := s.now()
		student.ApplyCharge(period, s.Policy, now)
		student.Touch(now, domain.SystemActor)
		if err := tx.Students.UpdateStudent(ctx, *student); err != nil {
			return err
		}

		amount := student.MonthlyFee
		activity = s.newActivity(domain.ActivityFeesGenerated, student.StudentID, domain.SystemActor,
			fmt.Sprintf("Fee of %s generated for %s (%s)", utils.FormatWithPrecision(amount, s.Policy.Precision), student.Name, period))
		activity.StudentID = student.StudentID
		activity.Amount = &amount
		if err := tx.Activities.SaveActivity(ctx, activity); err != nil {
			return err
		}
		charged = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if charged {
		s.publish(activity)
	}
	return charged, nil
}
