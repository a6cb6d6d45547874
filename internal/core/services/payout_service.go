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
	"github.com/SscSPs/academy_fee_ledger/internal/utils"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type payoutService struct {
	BaseService
	payoutRepo portsrepo.PayoutReader
	reverser   portssvc.PayoutReverserSvc
}

// NewPayoutService creates the payout engine. Reversals are delegated to
// reverser so that payout expenses deleted from the expense screen go through
// the same path.
func NewPayoutService(payoutRepo portsrepo.PayoutReader, txManager portsrepo.TransactionManager, reverser portssvc.PayoutReverserSvc, opts ...Option) portssvc.PayoutSvcFacade {
	svc := &payoutService{
		BaseService: newBaseService(txManager),
		payoutRepo:  payoutRepo,
		reverser:    reverser,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// payoutDraft accumulates the effects of one issuance attempt.
type payoutDraft struct {
	payout       domain.Payout
	lines        []domain.ReportLine
	incomeLinks  []domain.Income // existing rows to update
	newIncomes   []domain.Income // split children to insert
	pending      map[string]int  // index into newIncomes of rows created by this draft
	consumedByID map[string]bool
}

// link records a change to an income row. Rows created earlier in the same
// draft are not stored yet, so their pending copy is replaced instead.
func (d *payoutDraft) link(inc domain.Income) {
	if i, ok := d.pending[inc.IncomeID]; ok {
		d.newIncomes[i] = inc
		return
	}
	d.incomeLinks = append(d.incomeLinks, inc)
}

// add queues a new row. Parents are always queued before their children.
func (d *payoutDraft) add(inc domain.Income) {
	d.pending[inc.IncomeID] = len(d.newIncomes)
	d.newIncomes = append(d.newIncomes, inc)
}

func (d *payoutDraft) consume(inc domain.Income) {
	d.payout.ConsumedIncomeIDs = append(d.payout.ConsumedIncomeIDs, inc.IncomeID)
	d.consumedByID[inc.IncomeID] = true
}

// IssuePayout pays a teacher for every fee share of a PAID student that is
// covered by unconsumed income dated within the period. The payout, the
// income links, the report and the salary expense commit together.
func (s *payoutService) IssuePayout(ctx context.Context, teacherID string, period domain.Period, actorID string) (*domain.PayoutResult, error) {
	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" {
		return nil, apperrors.NewValidationFailedError("teacher id is required")
	}
	if period.IsZero() {
		return nil, domain.ErrInvalidPeriod
	}

	var (
		result   domain.PayoutResult
		activity domain.Activity
	)
	err := s.runInTx(ctx, "issue_payout", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		result = domain.PayoutResult{}

		draft, err := s.buildDraft(ctx, tx, teacherID, period, actorID)
		if err != nil {
			return err
		}
		if len(draft.lines) == 0 {
			return nil
		}
		payout := draft.payout
		if err := accounting.ValidatePayoutTotals(payout, draft.lines); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}

		if err := tx.Payouts.SavePayout(ctx, payout); err != nil {
			return err
		}
		for _, inc := range draft.incomeLinks {
			if err := tx.Incomes.UpdateIncomeLinks(ctx, inc); err != nil {
				return err
			}
		}
		for _, inc := range draft.newIncomes {
			if err := tx.Incomes.SaveIncome(ctx, inc); err != nil {
				return err
			}
		}

		report := domain.Report{
			PayoutID:         payout.PayoutID,
			TeacherID:        teacherID,
			Period:           period,
			StudentBreakdown: draft.lines,
			GrossEarnings:    payout.GrossEarnings,
			TeacherShare:     payout.TeacherShare,
			AcademyShare:     payout.AcademyShare,
			GeneratedAt:      payout.CreatedAt,
		}
		if err := tx.Payouts.SaveReport(ctx, report); err != nil {
			return err
		}

		payoutID := payout.PayoutID
		expense := domain.Expense{
			ExpenseID:   payout.ExpenseID,
			Description: fmt.Sprintf("Teacher payout %s for %s", teacherID, period),
			Amount:      payout.TeacherShare,
			Category:    domain.PayoutExpenseCategory,
			Date:        payout.CreatedAt,
			Source:      domain.ExpenseSourcePayout,
			PayoutID:    &payoutID,
			AuditFields: domain.NewAuditFields(payout.CreatedAt, actorID),
		}
		if err := tx.Expenses.SaveExpense(ctx, expense); err != nil {
			return err
		}

		activity = s.newActivity(domain.ActivityPayoutIssued, payout.PayoutID, actorID,
			fmt.Sprintf("Payout of %s issued to %s for %s", utils.FormatWithPrecision(payout.TeacherShare, s.Policy.Precision), teacherID, period))
		activity.TeacherID = teacherID
		activity.Amount = &payout.TeacherShare
		if err := tx.Activities.SaveActivity(ctx, activity); err != nil {
			return err
		}

		result = domain.PayoutResult{Eligible: true, Payout: &payout, Report: &report}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to issue payout",
			slog.String("teacher_id", teacherID),
			slog.String("period", period.String()))
		return nil, err
	}

	if !result.Eligible {
		s.LogWarn(ctx, "No eligible earnings for payout",
			slog.String("teacher_id", teacherID),
			slog.String("period", period.String()))
		return &result, nil
	}

	s.publish(activity)
	s.LogInfo(ctx, "Payout issued",
		slog.String("payout_id", result.Payout.PayoutID),
		slog.String("teacher_id", teacherID),
		slog.String("period", period.String()),
		slog.String("gross_earnings", result.Payout.GrossEarnings.String()),
		slog.String("teacher_share", result.Payout.TeacherShare.String()),
		slog.Int("consumed_incomes", len(result.Payout.ConsumedIncomeIDs)))
	return &result, nil
}

// buildDraft locks the teacher's PAID students and their open income and
// decides which income rows each fee share consumes.
func (s *payoutService) buildDraft(ctx context.Context, tx portsrepo.TxRepositories, teacherID string, period domain.Period, actorID string) (*payoutDraft, error) {
	students, err := tx.Students.ListPaidStudentsByTeacherForUpdate(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	alreadyPaid, err := s.paidShares(ctx, tx, teacherID, period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from, to := s.Policy.PeriodBounds(period)
	draft := &payoutDraft{
		payout: domain.Payout{
			PayoutID:          uuid.NewString(),
			TeacherID:         teacherID,
			Period:            period,
			PeriodStart:       from,
			PeriodEnd:         to,
			ConsumedIncomeIDs: []string{},
			Status:            domain.PayoutIssued,
			ExpenseID:         uuid.NewString(),
			AuditFields:       domain.NewAuditFields(now, actorID),
		},
		pending:      make(map[string]int),
		consumedByID: make(map[string]bool),
	}

	gross := decimal.Zero
	for _, student := range students {
		shares := student.SharesForTeacher(teacherID)
		if len(shares) == 0 {
			continue
		}
		open, err := tx.Incomes.ListOpenIncomeForUpdate(ctx, student.StudentID, from, to)
		if err != nil {
			return nil, err
		}

		for _, share := range shares {
			if alreadyPaid[shareKey(student.StudentID, share.SubjectName)] {
				continue
			}
			alloc, ok := accounting.AllocateShare(open, share.FeeShare)
			if !ok {
				s.LogDebug(ctx, "Fee share not covered by open income",
					slog.String("student_id", student.StudentID),
					slog.String("subject", share.SubjectName))
				continue
			}

			line := domain.ReportLine{
				StudentID:   student.StudentID,
				StudentName: student.Name,
				Class:       student.Class,
				SubjectName: share.SubjectName,
				FeeShare:    share.FeeShare,
			}
			for _, inc := range alloc.Whole {
				inc.PayoutID = &draft.payout.PayoutID
				inc.Touch(now, actorID)
				draft.link(inc)
				draft.consume(inc)
				line.IncomeIDs = append(line.IncomeIDs, inc.IncomeID)
			}
			var remainder *domain.Income
			if alloc.Partial != nil {
				superseded, consumedPart, rest := domain.SplitIncome(*alloc.Partial, alloc.PartialAmount, uuid.NewString(), uuid.NewString(), now, actorID)
				consumedPart.PayoutID = &draft.payout.PayoutID
				draft.link(superseded)
				draft.add(consumedPart)
				draft.add(rest)
				draft.consume(consumedPart)
				line.IncomeIDs = append(line.IncomeIDs, consumedPart.IncomeID)
				remainder = &rest
			}
			open = remainingOpen(open, draft.consumedByID, alloc.Partial, remainder)

			draft.lines = append(draft.lines, line)
			gross = gross.Add(share.FeeShare)
		}
	}

	draft.payout.GrossEarnings = gross
	draft.payout.TeacherShare, draft.payout.AcademyShare = s.Policy.SplitEarnings(gross)
	return draft, nil
}

func shareKey(studentID, subject string) string {
	return studentID + "\x00" + subject
}

// paidShares collects the student subjects already covered by the teacher's
// issued payouts for the period. Reversed payouts do not count.
func (s *payoutService) paidShares(ctx context.Context, tx portsrepo.TxRepositories, teacherID string, period domain.Period) (map[string]bool, error) {
	payouts, err := tx.Payouts.ListPayoutsByTeacher(ctx, teacherID, &period)
	if err != nil {
		return nil, err
	}
	paid := make(map[string]bool)
	for _, p := range payouts {
		if p.Status != domain.PayoutIssued {
			continue
		}
		report, err := tx.Payouts.FindReportByPayoutID(ctx, p.PayoutID)
		if err != nil {
			return nil, err
		}
		for _, line := range report.StudentBreakdown {
			paid[shareKey(line.StudentID, line.SubjectName)] = true
		}
	}
	return paid, nil
}

// remainingOpen drops consumed rows from open and puts the remainder of a
// split row where its parent was, keeping the oldest-first order.
func remainingOpen(open []domain.Income, consumed map[string]bool, split *domain.Income, remainder *domain.Income) []domain.Income {
	out := make([]domain.Income, 0, len(open))
	for _, inc := range open {
		if split != nil && inc.IncomeID == split.IncomeID {
			if remainder != nil {
				out = append(out, *remainder)
			}
			continue
		}
		if consumed[inc.IncomeID] {
			continue
		}
		out = append(out, inc)
	}
	return out
}

func (s *payoutService) ReversePayout(ctx context.Context, payoutID string, actorID string) (*domain.ReversalResult, error) {
	return s.reverser.ReversePayout(ctx, payoutID, actorID)
}

func (s *payoutService) GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error) {
	return s.payoutRepo.FindPayoutByID(ctx, payoutID)
}

// GetPayoutReport returns the printable breakdown of an issued payout.
// Reversed payouts have no report.
func (s *payoutService) GetPayoutReport(ctx context.Context, payoutID string) (*domain.Report, error) {
	if _, err := s.payoutRepo.FindPayoutByID(ctx, payoutID); err != nil {
		return nil, err
	}
	report, err := s.payoutRepo.FindReportByPayoutID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *payoutService) ListPayouts(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error) {
	payouts, err := s.payoutRepo.ListPayoutsByTeacher(ctx, teacherID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payouts", slog.String("teacher_id", teacherID))
		return nil, err
	}
	return payouts, nil
}
