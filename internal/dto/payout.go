package dto

import (
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssuePayoutRequest selects the period to pay a teacher for. An empty
// period means the current month.
type IssuePayoutRequest struct {
	Period string `json:"period" binding:"omitempty,len=7"` // YYYY-MM
}

// ListPayoutsParams holds the query parameters of a teacher's payout listing.
type ListPayoutsParams struct {
	Period string `form:"period" binding:"omitempty,len=7"`
}

// PayoutResponse defines the data returned for a payout.
type PayoutResponse struct {
	PayoutID          string              `json:"payoutID"`
	TeacherID         string              `json:"teacherID"`
	Period            string              `json:"period"`
	PeriodStart       time.Time           `json:"periodStart"`
	PeriodEnd         time.Time           `json:"periodEnd"`
	ConsumedIncomeIDs []string            `json:"consumedIncomeIDs"`
	GrossEarnings     decimal.Decimal     `json:"grossEarnings"`
	TeacherShare      decimal.Decimal     `json:"teacherShare"`
	AcademyShare      decimal.Decimal     `json:"academyShare"`
	Status            domain.PayoutStatus `json:"status"`
	ExpenseID         string              `json:"expenseID"`
	ReversedAt        *time.Time          `json:"reversedAt,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}

// IssuePayoutResponse is returned by the payout endpoint. Eligible is false
// when the teacher had no collectable earnings in the period.
type IssuePayoutResponse struct {
	Eligible bool            `json:"eligible"`
	Payout   *PayoutResponse `json:"payout,omitempty"`
	Report   *domain.Report  `json:"report,omitempty"`
}

// ReversalResponse is returned by the reversal endpoint.
type ReversalResponse struct {
	PayoutID         string                  `json:"payoutID"`
	AlreadyReversed  bool                    `json:"alreadyReversed"`
	VoidedIncomeIDs  []string                `json:"voidedIncomeIDs"`
	RestoredBalances []domain.StudentBalance `json:"restoredBalances"`
}

// ToPayoutResponse converts a domain.Payout to PayoutResponse DTO
func ToPayoutResponse(p *domain.Payout) PayoutResponse {
	consumed := p.ConsumedIncomeIDs
	if consumed == nil {
		consumed = []string{}
	}
	return PayoutResponse{
		PayoutID:          p.PayoutID,
		TeacherID:         p.TeacherID,
		Period:            p.Period.String(),
		PeriodStart:       p.PeriodStart,
		PeriodEnd:         p.PeriodEnd,
		ConsumedIncomeIDs: consumed,
		GrossEarnings:     p.GrossEarnings,
		TeacherShare:      p.TeacherShare,
		AcademyShare:      p.AcademyShare,
		Status:            p.Status,
		ExpenseID:         p.ExpenseID,
		ReversedAt:        p.ReversedAt,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
	}
}

// ToPayoutResponses converts a slice of domain.Payout to []PayoutResponse.
func ToPayoutResponses(payouts []domain.Payout) []PayoutResponse {
	responses := make([]PayoutResponse, len(payouts))
	for i := range payouts {
		responses[i] = ToPayoutResponse(&payouts[i])
	}
	return responses
}

// ToIssuePayoutResponse converts a domain.PayoutResult to IssuePayoutResponse DTO
func ToIssuePayoutResponse(r *domain.PayoutResult) IssuePayoutResponse {
	resp := IssuePayoutResponse{Eligible: r.Eligible, Report: r.Report}
	if r.Payout != nil {
		p := ToPayoutResponse(r.Payout)
		resp.Payout = &p
	}
	return resp
}

// ToReversalResponse converts a domain.ReversalResult to ReversalResponse DTO
func ToReversalResponse(r *domain.ReversalResult) ReversalResponse {
	resp := ReversalResponse{
		PayoutID:         r.PayoutID,
		AlreadyReversed:  r.AlreadyReversed,
		VoidedIncomeIDs:  r.VoidedIncomeIDs,
		RestoredBalances: r.RestoredBalances,
	}
	if resp.VoidedIncomeIDs == nil {
		resp.VoidedIncomeIDs = []string{}
	}
	if resp.RestoredBalances == nil {
		resp.RestoredBalances = []domain.StudentBalance{}
	}
	return resp
}
