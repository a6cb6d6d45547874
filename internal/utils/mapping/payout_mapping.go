package mapping

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/SscSPs/academy_fee_ledger/internal/models"
)

// ToModelPayout converts a domain Payout to a model Payout
func ToModelPayout(d domain.Payout) models.Payout {
	consumed := d.ConsumedIncomeIDs
	if consumed == nil {
		consumed = []string{}
	}
	return models.Payout{
		PayoutID:          d.PayoutID,
		TeacherID:         d.TeacherID,
		Period:            d.Period.String(),
		PeriodStart:       d.PeriodStart,
		PeriodEnd:         d.PeriodEnd,
		ConsumedIncomeIDs: consumed,
		GrossEarnings:     d.GrossEarnings,
		TeacherShare:      d.TeacherShare,
		AcademyShare:      d.AcademyShare,
		Status:            string(d.Status),
		ExpenseID:         d.ExpenseID,
		ReversedAt:        d.ReversedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayout converts a model Payout to a domain Payout
func ToDomainPayout(m models.Payout) (domain.Payout, error) {
	period, err := domain.ParsePeriod(m.Period)
	if err != nil {
		return domain.Payout{}, err
	}
	return domain.Payout{
		PayoutID:          m.PayoutID,
		TeacherID:         m.TeacherID,
		Period:            period,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		ConsumedIncomeIDs: m.ConsumedIncomeIDs,
		GrossEarnings:     m.GrossEarnings,
		TeacherShare:      m.TeacherShare,
		AcademyShare:      m.AcademyShare,
		Status:            domain.PayoutStatus(m.Status),
		ExpenseID:         m.ExpenseID,
		ReversedAt:        m.ReversedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelPayoutReport converts a domain Report to a model PayoutReport
func ToModelPayoutReport(d domain.Report) models.PayoutReport {
	lines := make([]models.ReportLine, len(d.StudentBreakdown))
	for i, l := range d.StudentBreakdown {
		lines[i] = models.ReportLine{
			StudentID:   l.StudentID,
			StudentName: l.StudentName,
			Class:       l.Class,
			SubjectName: l.SubjectName,
			FeeShare:    l.FeeShare,
			IncomeIDs:   l.IncomeIDs,
		}
	}
	return models.PayoutReport{
		PayoutID:         d.PayoutID,
		TeacherID:        d.TeacherID,
		Period:           d.Period.String(),
		StudentBreakdown: lines,
		GrossEarnings:    d.GrossEarnings,
		TeacherShare:     d.TeacherShare,
		AcademyShare:     d.AcademyShare,
		GeneratedAt:      d.GeneratedAt,
	}
}

// ToDomainReport converts a model PayoutReport to a domain Report
func ToDomainReport(m models.PayoutReport) (domain.Report, error) {
	period, err := domain.ParsePeriod(m.Period)
	if err != nil {
		return domain.Report{}, err
	}
	lines := make([]domain.ReportLine, len(m.StudentBreakdown))
	for i, l := range m.StudentBreakdown {
		lines[i] = domain.ReportLine{
			StudentID:   l.StudentID,
			StudentName: l.StudentName,
			Class:       l.Class,
			SubjectName: l.SubjectName,
			FeeShare:    l.FeeShare,
			IncomeIDs:   l.IncomeIDs,
		}
	}
	return domain.Report{
		PayoutID:         m.PayoutID,
		TeacherID:        m.TeacherID,
		Period:           period,
		StudentBreakdown: lines,
		GrossEarnings:    m.GrossEarnings,
		TeacherShare:     m.TeacherShare,
		AcademyShare:     m.AcademyShare,
		GeneratedAt:      m.GeneratedAt,
	}, nil
}
