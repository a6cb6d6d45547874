package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
)

// ToModelStudent converts a domain Student to a model Student
func ToModelStudent(d domain.Student) models.Student {
	subjects := make([]models.SubjectShare, len(d.Subjects))
	for i, s := range d.Subjects {
		subjects[i] = models.SubjectShare{SubjectName: s.SubjectName, TeacherID: s.TeacherID, FeeShare: s.FeeShare}
	}
	return models.Student{
		StudentID:              d.StudentID,
		Name:                   d.Name,
		Class:                  d.Class,
		Subjects:               subjects,
		MonthlyFee:             d.MonthlyFee,
		TotalFee:               d.TotalFee,
		FeeStatus:              string(d.FeeStatus),
		LastFeeGeneratedPeriod: periodColumn(d.LastFeeGeneratedPeriod),
		IsActive:               d.IsActive,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStudent converts a model Student to a domain Student
func ToDomainStudent(m models.Student) (domain.Student, error) {
	period, err := parsePeriodColumn(m.LastFeeGeneratedPeriod)
	if err != nil {
		return domain.Student{}, err
	}
	subjects := make([]domain.SubjectShare, len(m.Subjects))
	for i, s := range m.Subjects {
		subjects[i] = domain.SubjectShare{SubjectName: s.SubjectName, TeacherID: s.TeacherID, FeeShare: s.FeeShare}
	}
	return domain.Student{
		StudentID:              m.StudentID,
		Name:                   m.Name,
		Class:                  m.Class,
		Subjects:               subjects,
		MonthlyFee:             m.MonthlyFee,
		TotalFee:               m.TotalFee,
		FeeStatus:              domain.FeeStatus(m.FeeStatus),
		LastFeeGeneratedPeriod: period,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}, nil
}
