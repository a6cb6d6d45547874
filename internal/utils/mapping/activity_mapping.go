package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelActivity converts a domain Activity to a model Activity
func ToModelActivity(d domain.Activity) models.Activity {
	m := models.Activity{
		ActivityID: d.ActivityID,
		Kind:       string(d.Kind),
		EntityID:   d.EntityID,
		StudentID:  optionalString(d.StudentID),
		TeacherID:  optionalString(d.TeacherID),
		Message:    d.Message,
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
	}
	if d.Amount != nil {
		m.Amount = decimal.NewNullDecimal(*d.Amount)
	}
	return m
}

// ToDomainActivity converts a model Activity to a domain Activity
func ToDomainActivity(m models.Activity) domain.Activity {
	d := domain.Activity{
		ActivityID: m.ActivityID,
		Kind:       domain.ActivityKind(m.Kind),
		EntityID:   m.EntityID,
		StudentID:  derefString(m.StudentID),
		TeacherID:  derefString(m.TeacherID),
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
	if m.Amount.Valid {
		amount := m.Amount.Decimal
		d.Amount = &amount
	}
	return d
}
