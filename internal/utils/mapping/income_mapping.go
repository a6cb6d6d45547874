package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
)

// ToModelIncome converts a domain Income to a model Income
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:       d.IncomeID,
		StudentID:      d.StudentID,
		Amount:         d.Amount,
		IncomeDate:     d.Date,
		ReceiptID:      d.ReceiptID,
		Voided:         d.Voided,
		PayoutID:       d.PayoutID,
		ParentIncomeID: d.ParentIncomeID,
		SupersededBy:   d.SupersededBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainIncome converts a model Income to a domain Income
func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:       m.IncomeID,
		StudentID:      m.StudentID,
		Amount:         m.Amount,
		Date:           m.IncomeDate,
		ReceiptID:      m.ReceiptID,
		Voided:         m.Voided,
		PayoutID:       m.PayoutID,
		ParentIncomeID: m.ParentIncomeID,
		SupersededBy:   m.SupersededBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
