package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	reverser    portssvc.PayoutReverserSvc
	validate    *validator.Validate
}

// NewExpenseService creates the expense service. Deleting a payout expense is
// handed to reverser.
func NewExpenseService(expenseRepo portsrepo.ExpenseReader, txManager portsrepo.TransactionManager, reverser portssvc.PayoutReverserSvc, opts ...Option) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		BaseService: newBaseService(txManager),
		expenseRepo: expenseRepo,
		reverser:    reverser,
		validate:    validator.New(),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.IsDeleted() {
		return nil, fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
	}
	return expense, nil
}

func parseBound(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s must be an RFC3339 timestamp", name))
	}
	return &t, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	filter := domain.ExpenseFilter{Category: params.Category}
	if params.Source != "" {
		source := domain.ExpenseSource(strings.ToUpper(params.Source))
		if source != domain.ExpenseSourceManual && source != domain.ExpenseSourcePayout {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown expense source %q", params.Source))
		}
		filter.Source = &source
	}
	var err error
	if filter.From, err = parseBound("from", params.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseBound("to", params.To); err != nil {
		return nil, err
	}

	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, err
	}
	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	amount := s.Policy.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Description: req.Description,
		Amount:      amount,
		Category:    req.Category,
		Date:        date,
		Source:      domain.ExpenseSourceManual,
		AuditFields: domain.NewAuditFields(now, actorID),
	}

	var activity domain.Activity
	err := s.runInTx(ctx, "create_expense", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if err := tx.Expenses.SaveExpense(ctx, expense); err != nil {
			return err
		}
		activity = s.newActivity(domain.ActivityExpenseRecorded, expense.ExpenseID, actorID,
			fmt.Sprintf("Expense of %s recorded: %s", utils.FormatWithPrecision(amount, s.Policy.Precision), expense.Description))
		activity.Amount = &expense.Amount
		return tx.Activities.SaveActivity(ctx, activity)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create expense")
		return nil, err
	}

	s.publish(activity)
	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", expense.Category),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

// UpdateExpense edits a manual expense. Payout expenses mirror the payout and
// are only changed by reversing it.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error) {
	var updated domain.Expense
	err := s.runInTx(ctx, "update_expense", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		expense, err := tx.Expenses.FindExpenseForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if expense.IsDeleted() {
			return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
		}
		if expense.IsPayoutExpense() {
			return domain.ErrPayoutExpenseImmutable
		}

		if req.Description != nil {
			if strings.TrimSpace(*req.Description) == "" {
				return apperrors.NewValidationFailedError("description cannot be empty")
			}
			expense.Description = *req.Description
		}
		if req.Category != nil {
			if strings.TrimSpace(*req.Category) == "" {
				return apperrors.NewValidationFailedError("category cannot be empty")
			}
			expense.Category = *req.Category
		}
		if req.Amount != nil {
			amount := s.Policy.RoundMoney(*req.Amount)
			if !amount.IsPositive() {
				return domain.ErrInvalidAmount
			}
			expense.Amount = amount
		}
		if req.Date != nil {
			expense.Date = *req.Date
		}
		expense.Touch(s.now(), actorID)
		if err := tx.Expenses.UpdateExpense(ctx, *expense); err != nil {
			return err
		}
		updated = *expense
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, actorID string) (*domain.ExpenseDeletion, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.IsPayoutExpense() && expense.PayoutID != nil {
		s.LogInfo(ctx, "Deleting payout expense reverses its payout",
			slog.String("expense_id", expenseID),
			slog.String("payout_id", *expense.PayoutID))
		reversal, err := s.reverser.ReversePayout(ctx, *expense.PayoutID, actorID)
		if err != nil {
			return nil, err
		}
		return &domain.ExpenseDeletion{ExpenseID: expenseID, Reversal: reversal}, nil
	}

	var activity domain.Activity
	err = s.runInTx(ctx, "delete_expense", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		current, err := tx.Expenses.FindExpenseForUpdate(ctx, expenseID)
		if err != nil {
			return err
		}
		if current.IsDeleted() {
			return fmt.Errorf("%w: %s", domain.ErrExpenseNotFound, expenseID)
		}
		now := s.now()
		if err := tx.Expenses.TombstoneExpense(ctx, expenseID, now, actorID); err != nil {
			return err
		}
		activity = s.newActivity(domain.ActivityExpenseDeleted, expenseID, actorID,
			fmt.Sprintf("Expense deleted: %s", current.Description))
		amount := current.Amount
		activity.Amount = &amount
		return tx.Activities.SaveActivity(ctx, activity)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.publish(activity)
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return &domain.ExpenseDeletion{ExpenseID: expenseID}, nil
}
