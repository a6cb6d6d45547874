package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// periodColumn renders a period for a nullable YYYY-MM column.
func periodColumn(p domain.Period) *string {
	return optionalString(p.String())
}

func parsePeriodColumn(s *string) (domain.Period, error) {
	if s == nil || *s == "" {
		return domain.Period{}, nil
	}
	return domain.ParsePeriod(*s)
}
