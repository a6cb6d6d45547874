package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
)

type incomeRepository struct {
	run runner
}

var _ portsrepo.IncomeRepositoryFacade = (*incomeRepository)(nil)

func sortIncomes(incomes []domain.Income) {
	sort.SliceStable(incomes, func(i, j int) bool {
		if !incomes[i].Date.Equal(incomes[j].Date) {
			return incomes[i].Date.Before(incomes[j].Date)
		}
		return incomes[i].IncomeID < incomes[j].IncomeID
	})
}

func (r *incomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	var found *domain.Income
	err := r.run(func(tx *txState) error {
		inc, ok := tx.incomes.get(incomeID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrIncomeNotFound, incomeID)
		}
		found = &inc
		return nil
	})
	return found, err
}

func (r *incomeRepository) ListIncomeByStudent(ctx context.Context, studentID string, includeSuperseded bool) ([]domain.Income, error) {
	out := []domain.Income{}
	err := r.run(func(tx *txState) error {
		for _, inc := range tx.incomes.scan() {
			if inc.StudentID != studentID {
				continue
			}
			if !includeSuperseded && !inc.IsEffective() {
				continue
			}
			out = append(out, inc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortIncomes(out)
	return out, nil
}

func (r *incomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	return r.run(func(tx *txState) error {
		if _, exists := tx.incomes.get(income.IncomeID); exists {
			return fmt.Errorf("income %s already exists", income.IncomeID)
		}
		if income.ParentIncomeID == nil && tx.receiptTaken(income.ReceiptID) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReceipt, income.ReceiptID)
		}
		tx.incomes.put(income.IncomeID, income, true)
		return nil
	})
}

// UpdateIncomeLinks persists the payout link, void flag and supersession of
// an existing row. Amount, date and receipt are never rewritten.
func (r *incomeRepository) UpdateIncomeLinks(ctx context.Context, income domain.Income) error {
	return r.run(func(tx *txState) error {
		current, ok := tx.incomes.get(income.IncomeID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrIncomeNotFound, income.IncomeID)
		}
		current.PayoutID = income.PayoutID
		current.Voided = income.Voided
		current.SupersededBy = income.SupersededBy
		current.LastUpdatedAt = income.LastUpdatedAt
		current.LastUpdatedBy = income.LastUpdatedBy
		tx.incomes.put(current.IncomeID, current, false)
		return nil
	})
}

func (r *incomeRepository) ListOpenIncomeForUpdate(ctx context.Context, studentID string, from, to time.Time) ([]domain.Income, error) {
	out := []domain.Income{}
	err := r.run(func(tx *txState) error {
		for _, inc := range tx.incomes.scan() {
			if inc.StudentID != studentID || !inc.IsOpen() {
				continue
			}
			if inc.Date.Before(from) || !inc.Date.Before(to) {
				continue
			}
			out = append(out, inc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortIncomes(out)
	return out, nil
}

func (r *incomeRepository) FindIncomesByIDsForUpdate(ctx context.Context, incomeIDs []string) (map[string]domain.Income, error) {
	out := make(map[string]domain.Income, len(incomeIDs))
	err := r.run(func(tx *txState) error {
		for _, id := range incomeIDs {
			if inc, ok := tx.incomes.get(id); ok {
				out[id] = inc
			}
		}
		return nil
	})
	return out, err
}
