package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity represents a row of the activities table.
type Activity struct {
	ActivityID string              `db:"activity_id"`
	Kind       string              `db:"kind"`
	EntityID   string              `db:"entity_id"`
	StudentID  *string             `db:"student_id"`
	TeacherID  *string             `db:"teacher_id"`
	Amount     decimal.NullDecimal `db:"amount"`
	Message    string              `db:"message"`
	CreatedAt  time.Time           `db:"created_at"`
	CreatedBy  string              `db:"created_by"`
}
