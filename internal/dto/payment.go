package dto

import (
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record a fee payment.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"1500"`
	ReceiptID string          `json:"receiptID"` // Optional, generated when empty
}

// IncomeResponse defines the data returned for an income row.
type IncomeResponse struct {
	IncomeID       string          `json:"incomeID"`
	StudentID      string          `json:"studentID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	ReceiptID      string          `json:"receiptID"`
	Voided         bool            `json:"voided"`
	PayoutID       *string         `json:"payoutID,omitempty"`
	ParentIncomeID *string         `json:"parentIncomeID,omitempty"`
	SupersededBy   *string         `json:"supersededBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// PaymentResponse is returned after a payment is recorded.
type PaymentResponse struct {
	StudentID string           `json:"studentID"`
	Balance   decimal.Decimal  `json:"balance"`
	Status    domain.FeeStatus `json:"status"`
	Income    IncomeResponse   `json:"income"`
}

// ListIncomeParams holds the query parameters of a student's income listing.
type ListIncomeParams struct {
	IncludeHistory bool `form:"includeHistory"` // Include rows replaced by a split
}

// ListIncomeResponse wraps a student's income rows.
type ListIncomeResponse struct {
	StudentID string           `json:"studentID"`
	Incomes   []IncomeResponse `json:"incomes"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO
func ToIncomeResponse(i *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:       i.IncomeID,
		StudentID:      i.StudentID,
		Amount:         i.Amount,
		Date:           i.Date,
		ReceiptID:      i.ReceiptID,
		Voided:         i.Voided,
		PayoutID:       i.PayoutID,
		ParentIncomeID: i.ParentIncomeID,
		SupersededBy:   i.SupersededBy,
		CreatedAt:      i.CreatedAt,
		CreatedBy:      i.CreatedBy,
	}
}

// ToIncomeResponses converts a slice of domain.Income to []IncomeResponse.
func ToIncomeResponses(incomes []domain.Income) []IncomeResponse {
	responses := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		responses[i] = ToIncomeResponse(&incomes[i])
	}
	return responses
}

// ToPaymentResponse converts a domain.PaymentResult to PaymentResponse DTO
func ToPaymentResponse(r *domain.PaymentResult) PaymentResponse {
	return PaymentResponse{
		StudentID: r.StudentID,
		Balance:   r.Balance,
		Status:    r.Status,
		Income:    ToIncomeResponse(&r.Income),
	}
}
