package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is one recorded fee payment (or a split part of one). Rows are
// append-only: amounts are never edited and rows are never deleted.
type Income struct {
	IncomeID       string          `json:"incomeID"`
	StudentID      string          `json:"studentID"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	ReceiptID      string          `json:"receiptID"`                // Unique among root rows, printed on the receipt
	Voided         bool            `json:"voided"`                   // Set once consumed by a reversed payout
	PayoutID       *string         `json:"payoutID,omitempty"`       // Set once counted toward an issued payout
	ParentIncomeID *string         `json:"parentIncomeID,omitempty"` // Set on rows produced by a split
	SupersededBy   *string         `json:"supersededBy,omitempty"`   // Set on a row that was split into children
	AuditFields
}

// IsEffective reports whether the row still represents money on its own
// (i.e. it has not been replaced by split children).
func (i Income) IsEffective() bool {
	return i.SupersededBy == nil
}

// CountsTowardBalance reports whether the row reduces the student's balance.
func (i Income) CountsTowardBalance() bool {
	return i.IsEffective() && !i.Voided
}

// IsOpen reports whether the row can still be consumed by a payout.
func (i Income) IsOpen() bool {
	return i.CountsTowardBalance() && i.PayoutID == nil
}

// SplitIncome divides an open income row into a consumed part of exactly
// `consumed` and a remainder. The parent is marked superseded by the consumed
// part; both children keep the parent's receipt and date.
func SplitIncome(parent Income, consumed decimal.Decimal, consumedID, remainderID string, now time.Time, actor string) (Income, Income, Income) {
	parentID := parent.IncomeID
	child := func(id string, amount decimal.Decimal) Income {
		return Income{
			IncomeID:       id,
			StudentID:      parent.StudentID,
			Amount:         amount,
			Date:           parent.Date,
			ReceiptID:      parent.ReceiptID,
			ParentIncomeID: &parentID,
			AuditFields:    NewAuditFields(now, actor),
		}
	}
	consumedPart := child(consumedID, consumed)
	remainder := child(remainderID, parent.Amount.Sub(consumed))

	superseded := parent
	superseded.SupersededBy = &consumedPart.IncomeID
	superseded.Touch(now, actor)
	return superseded, consumedPart, remainder
}

// PaymentResult is returned by the payment recorder for receipt printing.
type PaymentResult struct {
	StudentID string          `json:"studentID"`
	Balance   decimal.Decimal `json:"balance"`
	Status    FeeStatus       `json:"status"`
	Income    Income          `json:"income"`
}
