package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		ExpenseDate: d.Date,
		Source:      string(d.Source),
		PayoutID:    d.PayoutID,
		DeletedAt:   d.DeletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    m.Category,
		Date:        m.ExpenseDate,
		Source:      domain.ExpenseSource(m.Source),
		PayoutID:    m.PayoutID,
		DeletedAt:   m.DeletedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
