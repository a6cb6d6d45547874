package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	BaseService
	studentRepo portsrepo.StudentReader
	incomeRepo  portsrepo.IncomeReader
}

// NewPaymentService creates the payment recorder.
func NewPaymentService(studentRepo portsrepo.StudentReader, incomeRepo portsrepo.IncomeReader, txManager portsrepo.TransactionManager, opts ...Option) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		BaseService: newBaseService(txManager),
		studentRepo: studentRepo,
		incomeRepo:  incomeRepo,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// newReceiptID generates a printable receipt number.
func newReceiptID() string {
	return "RCPT-" + strings.ToUpper(uuid.NewString()[:8])
}

// RecordPayment lowers the student's balance and appends the income row in a
// single transaction. Payments above the balance floor it at zero; the excess
// is not kept as credit.
func (s *paymentService) RecordPayment(ctx context.Context, studentID string, amount decimal.Decimal, receiptID string, actorID string) (*domain.PaymentResult, error) {
	amount = s.Policy.RoundMoney(amount)
	if !amount.IsPositive() {
		s.LogWarn(ctx, "Rejected payment with non-positive amount",
			slog.String("student_id", studentID),
			slog.String("amount", amount.String()))
		return nil, domain.ErrInvalidAmount
	}
	receiptID = strings.TrimSpace(receiptID)
	generatedReceipt := receiptID == ""

	var (
		result   domain.PaymentResult
		activity domain.Activity
		dropped  decimal.Decimal
	)
	err := s.runInTx(ctx, "record_payment", func(ctx context.Context, tx portsrepo.TxRepositories) error {
		student, err := tx.Students.FindStudentForUpdate(ctx, studentID)
		if err != nil {
			return err
		}
		if generatedReceipt {
			receiptID = newReceiptID()
		}

		now := s.now()
		dropped = decimal.Max(decimal.Zero, amount.Sub(student.TotalFee))
		student.ApplyPayment(amount, s.Policy, now)
		student.Touch(now, actorID)
		if err := tx.Students.UpdateStudent(ctx, *student); err != nil {
			return err
		}

		income := domain.Income{
			IncomeID:    uuid.NewString(),
			StudentID:   student.StudentID,
			Amount:      amount,
			Date:        now,
			ReceiptID:   receiptID,
			AuditFields: domain.NewAuditFields(now, actorID),
		}
		if err := tx.Incomes.SaveIncome(ctx, income); err != nil {
			return err
		}

		activity = s.newActivity(domain.ActivityPaymentRecorded, income.IncomeID, actorID,
			fmt.Sprintf("Payment of %s received from %s (receipt %s)", utils.FormatWithPrecision(amount, s.Policy.Precision), student.Name, receiptID))
		activity.StudentID = student.StudentID
		activity.Amount = &income.Amount
		if err := tx.Activities.SaveActivity(ctx, activity); err != nil {
			return err
		}

		result = domain.PaymentResult{
			StudentID: student.StudentID,
			Balance:   student.TotalFee,
			Status:    student.FeeStatus,
			Income:    income,
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("student_id", studentID),
			slog.String("receipt_id", receiptID))
		return nil, err
	}

	s.publish(activity)
	if dropped.IsPositive() {
		s.LogWarn(ctx, "Overpayment exceeded outstanding balance and was not credited",
			slog.String("student_id", studentID),
			slog.String("receipt_id", receiptID),
			slog.String("excess", dropped.String()))
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("student_id", studentID),
		slog.String("receipt_id", receiptID),
		slog.String("amount", amount.String()),
		slog.String("balance", result.Balance.String()),
		slog.String("status", string(result.Status)))
	return &result, nil
}

func (s *paymentService) GetStudentBalance(ctx context.Context, studentID string) (*domain.StudentBalance, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	balance := student.Balance()
	return &balance, nil
}

func (s *paymentService) ListIncomeForStudent(ctx context.Context, studentID string, includeHistory bool) ([]domain.Income, error) {
	if _, err := s.studentRepo.FindStudentByID(ctx, studentID); err != nil {
		return nil, err
	}
	incomes, err := s.incomeRepo.ListIncomeByStudent(ctx, studentID, includeHistory)
	if err != nil {
		s.LogError(ctx, err, "Failed to list income", slog.String("student_id", studentID))
		return nil, err
	}
	return incomes, nil
}
