package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind classifies entries of the recent activity feed.
type ActivityKind string

const (
	ActivityFeesGenerated   ActivityKind = "FEES_GENERATED"
	ActivityPaymentRecorded ActivityKind = "PAYMENT_RECORDED"
	ActivityPayoutIssued    ActivityKind = "PAYOUT_ISSUED"
	ActivityPayoutReversed  ActivityKind = "PAYOUT_REVERSED"
	ActivityExpenseRecorded ActivityKind = "EXPENSE_RECORDED"
	ActivityExpenseDeleted  ActivityKind = "EXPENSE_DELETED"
)

// Activity is an audit-style feed entry consumed by the dashboard.
type Activity struct {
	ActivityID string           `json:"activityID"`
	Kind       ActivityKind     `json:"kind"`
	EntityID   string           `json:"entityID"`
	StudentID  string           `json:"studentID,omitempty"`
	TeacherID  string           `json:"teacherID,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Message    string           `json:"message"`
	CreatedAt  time.Time        `json:"createdAt"`
	CreatedBy  string           `json:"createdBy"`
}
