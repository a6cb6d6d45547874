package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
)

type payoutRepository struct {
	run runner
}

var _ portsrepo.PayoutRepositoryFacade = (*payoutRepository)(nil)

func (r *payoutRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.Payout, error) {
	var found *domain.Payout
	err := r.run(func(tx *txState) error {
		p, ok := tx.payouts.get(payoutID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPayoutNotFound, payoutID)
		}
		found = &p
		return nil
	})
	return found, err
}

func (r *payoutRepository) FindPayoutForUpdate(ctx context.Context, payoutID string) (*domain.Payout, error) {
	return r.FindPayoutByID(ctx, payoutID)
}

func (r *payoutRepository) ListPayoutsByTeacher(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error) {
	out := []domain.Payout{}
	err := r.run(func(tx *txState) error {
		for _, p := range tx.payouts.scan() {
			if p.TeacherID != teacherID {
				continue
			}
			if period != nil && p.Period != *period {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *payoutRepository) FindReportByPayoutID(ctx context.Context, payoutID string) (*domain.Report, error) {
	var found *domain.Report
	err := r.run(func(tx *txState) error {
		rep, ok := tx.reports.get(payoutID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrReportNotFound, payoutID)
		}
		found = &rep
		return nil
	})
	return found, err
}

func (r *payoutRepository) SavePayout(ctx context.Context, payout domain.Payout) error {
	return r.run(func(tx *txState) error {
		if _, exists := tx.payouts.get(payout.PayoutID); exists {
			return fmt.Errorf("payout %s already exists", payout.PayoutID)
		}
		tx.payouts.put(payout.PayoutID, payout, true)
		return nil
	})
}

func (r *payoutRepository) UpdatePayoutStatus(ctx context.Context, payoutID string, status domain.PayoutStatus, reversedAt *time.Time, updatedBy string) error {
	return r.run(func(tx *txState) error {
		p, ok := tx.payouts.get(payoutID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrPayoutNotFound, payoutID)
		}
		p.Status = status
		p.ReversedAt = reversedAt
		now := p.LastUpdatedAt
		if reversedAt != nil {
			now = *reversedAt
		}
		p.Touch(now, updatedBy)
		tx.payouts.put(payoutID, p, false)
		return nil
	})
}

func (r *payoutRepository) SaveReport(ctx context.Context, report domain.Report) error {
	return r.run(func(tx *txState) error {
		tx.reports.put(report.PayoutID, report, true)
		return nil
	})
}

func (r *payoutRepository) DeleteReport(ctx context.Context, payoutID string) error {
	return r.run(func(tx *txState) error {
		if _, ok := tx.reports.get(payoutID); !ok {
			return nil
		}
		tx.reports.remove(payoutID)
		return nil
	})
}
