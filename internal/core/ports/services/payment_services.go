package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentWriterSvc records fee payments.
type PaymentWriterSvc interface {
	// RecordPayment appends an income row and lowers the student's balance.
	// An empty receiptID is replaced by a generated one.
	RecordPayment(ctx context.Context, studentID string, amount decimal.Decimal, receiptID string, actorID string) (*domain.PaymentResult, error)
}

// PaymentReaderSvc exposes balances and income history.
type PaymentReaderSvc interface {
	// GetStudentBalance returns the outstanding balance and status of a student.
	GetStudentBalance(ctx context.Context, studentID string) (*domain.StudentBalance, error)

	// ListIncomeForStudent lists a student's effective income rows, or every
	// row including split parents when includeHistory is set.
	ListIncomeForStudent(ctx context.Context, studentID string, includeHistory bool) ([]domain.Income, error)
}

// PaymentSvcFacade combines payment read and write operations
type PaymentSvcFacade interface {
	PaymentWriterSvc
	PaymentReaderSvc
}
