package dto

import (
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record a manual expense.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required" validate:"required"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"2500"`
	Category    string          `json:"category" binding:"required" validate:"required"`
	Date        *time.Time      `json:"date"` // Optional, defaults to now
}

// UpdateExpenseRequest defines the fields of a manual expense that can be edited.
type UpdateExpenseRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string"`
	Category    *string          `json:"category"`
	Date        *time.Time       `json:"date"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Source    string  `form:"source" binding:"omitempty,oneof=MANUAL PAYOUT"`
	Category  string  `form:"category"`
	From      string  `form:"from"` // RFC3339, inclusive
	To        string  `form:"to"`   // RFC3339, exclusive
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string               `json:"expenseID"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount"`
	Category      string               `json:"category"`
	Date          time.Time            `json:"date"`
	Source        domain.ExpenseSource `json:"source"`
	PayoutID      *string              `json:"payoutID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// DeleteExpenseResponse reports the outcome of deleting an expense. Deleting
// a payout expense reverses the payout.
type DeleteExpenseResponse struct {
	ExpenseID      string            `json:"expenseID"`
	ReversedPayout *ReversalResponse `json:"reversedPayout,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		Source:        e.Source,
		PayoutID:      e.PayoutID,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToDeleteExpenseResponse converts a domain.ExpenseDeletion to DeleteExpenseResponse DTO
func ToDeleteExpenseResponse(d *domain.ExpenseDeletion) DeleteExpenseResponse {
	resp := DeleteExpenseResponse{ExpenseID: d.ExpenseID}
	if d.Reversal != nil {
		r := ToReversalResponse(d.Reversal)
		resp.ReversedPayout = &r
	}
	return resp
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
