package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/utils"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/accounting"
)

type reversalService struct {
	BaseService
}

// NewReversalService creates the coordinator that undoes issued payouts.
func NewReversalService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.PayoutReverserSvc {
	svc := &reversalService{BaseService: newBaseService(txManager)}
	svc.apply(opts)
	return svc
}

var _ portssvc.PayoutReverserSvc = (*reversalService)(nil)

// ReversePayout undoes every effect of an issued payout in one transaction:
// the consumed income rows are voided, the affected students get the voided
// amounts back on their balance, the salary expense is tombstoned, the report
// is discarded and the payout is marked REVERSED. Reversing a reversed payout
// changes nothing.
func (s *reversalService) ReversePayout(ctx context.Context, payoutID string, actorID string) (*domain.ReversalResult, error) {
	var (
		result   domain.ReversalResult
		activity domain.Activity
	)
	err := s.runInTx(ctx, "reverse_payout", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		result = domain.ReversalResult{PayoutID: payoutID}

		payout, err := tx.Payouts.FindPayoutForUpdate(ctx, payoutID)
		if err != nil {
			return err
		}
		if payout.Status == domain.PayoutReversed {
			result.AlreadyReversed = true
			return nil
		}

		now := s.now()
		incomes, err := tx.Incomes.FindIncomesByIDsForUpdate(ctx, payout.ConsumedIncomeIDs)
		if err != nil {
			return err
		}
		voided := make([]domain.Income, 0, len(payout.ConsumedIncomeIDs))
		for _, id := range payout.ConsumedIncomeIDs {
			inc, ok := incomes[id]
			if !ok {
				return fmt.Errorf("%w: %s consumed by payout %s", domain.ErrIncomeNotFound, id, payoutID)
			}
			if inc.Voided || inc.PayoutID == nil || *inc.PayoutID != payoutID {
				continue
			}
			inc.Voided = true
			inc.PayoutID = nil
			inc.Touch(now, actorID)
			if err := tx.Incomes.UpdateIncomeLinks(ctx, inc); err != nil {
				return err
			}
			voided = append(voided, inc)
			result.VoidedIncomeIDs = append(result.VoidedIncomeIDs, inc.IncomeID)
		}

		restored := accounting.SumByStudent(voided)
		studentIDs := make([]string, 0, len(restored))
		for id := range restored {
			studentIDs = append(studentIDs, id)
		}
		sort.Strings(studentIDs)
		for _, studentID := range studentIDs {
			student, err := tx.Students.FindStudentForUpdate(ctx, studentID)
			if err != nil {
				return err
			}
			student.RestoreBalance(restored[studentID], s.Policy, now)
			student.Touch(now, actorID)
			if err := tx.Students.UpdateStudent(ctx, *student); err != nil {
				return err
			}
			result.RestoredBalances = append(result.RestoredBalances, student.Balance())
		}

		if payout.ExpenseID != "" {
			if err := tx.Expenses.TombstoneExpense(ctx, payout.ExpenseID, now, actorID); err != nil {
				return err
			}
		}
		if err := tx.Payouts.DeleteReport(ctx, payoutID); err != nil {
			return err
		}
		if err := tx.Payouts.UpdatePayoutStatus(ctx, payoutID, domain.PayoutReversed, &now, actorID); err != nil {
			return err
		}

		teacherShare := payout.TeacherShare
		activity = s.newActivity(domain.ActivityPayoutReversed, payoutID, actorID,
			fmt.Sprintf("Payout of %s to %s for %s reversed", utils.FormatWithPrecision(teacherShare, s.Policy.Precision), payout.TeacherID, payout.Period))
		activity.TeacherID = payout.TeacherID
		activity.Amount = &teacherShare
		return tx.Activities.SaveActivity(ctx, activity)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse payout", slog.String("payout_id", payoutID))
		return nil, err
	}

	if result.AlreadyReversed {
		s.LogWarn(ctx, "Payout already reversed", slog.String("payout_id", payoutID))
		return &result, nil
	}

	s.publish(activity)
	s.LogInfo(ctx, "Payout reversed",
		slog.String("payout_id", payoutID),
		slog.Int("voided_incomes", len(result.VoidedIncomeIDs)),
		slog.Int("students_restored", len(result.RestoredBalances)))
	return &result, nil
}
