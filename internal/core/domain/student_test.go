package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStudent_ValidateFeeShares(t *testing.T) {
	tolerance := decimal.NewFromInt(1)

	tests := []struct {
		name    string
		monthly int64
		shares  []string
		wantErr bool
	}{
		{name: "exact split", monthly: 3000, shares: []string{"1500", "1500"}},
		{name: "within one unit", monthly: 3000, shares: []string{"1000", "1000", "999.5"}},
		{name: "off by more than one unit", monthly: 3000, shares: []string{"1500", "1498"}, wantErr: true},
		{name: "negative share", monthly: 0, shares: []string{"10", "-10"}, wantErr: true},
		{name: "no subjects and no fee", monthly: 0, shares: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.Student{MonthlyFee: decimal.NewFromInt(tt.monthly)}
			for i, share := range tt.shares {
				s.Subjects = append(s.Subjects, domain.SubjectShare{
					SubjectName: "subject-" + string(rune('A'+i)),
					TeacherID:   "T1",
					FeeShare:    decimal.RequireFromString(share),
				})
			}
			err := s.ValidateFeeShares(tolerance)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrFeeShareMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudent_SharesForTeacher(t *testing.T) {
	s := domain.Student{Subjects: []domain.SubjectShare{
		{SubjectName: "Math", TeacherID: "T1", FeeShare: decimal.NewFromInt(1000)},
		{SubjectName: "Physics", TeacherID: "T2", FeeShare: decimal.NewFromInt(1000)},
		{SubjectName: "Statistics", TeacherID: "T1", FeeShare: decimal.NewFromInt(1000)},
	}}

	shares := s.SharesForTeacher("T1")
	if assert.Len(t, shares, 2) {
		assert.Equal(t, "Math", shares[0].SubjectName)
		assert.Equal(t, "Statistics", shares[1].SubjectName)
	}
	assert.Empty(t, s.SharesForTeacher("T9"))
}

func TestStudent_IsBilledFor(t *testing.T) {
	october := domain.NewPeriod(2026, time.October)

	assert.False(t, domain.Student{}.IsBilledFor(october), "never billed")
	assert.True(t, domain.Student{LastFeeGeneratedPeriod: october}.IsBilledFor(october))
	assert.True(t, domain.Student{LastFeeGeneratedPeriod: october.Next()}.IsBilledFor(october), "never bill backwards")
	assert.False(t, domain.Student{LastFeeGeneratedPeriod: domain.NewPeriod(2026, time.September)}.IsBilledFor(october))
}

func TestSplitIncome(t *testing.T) {
	now := time.Date(2026, time.October, 6, 0, 0, 0, 0, time.UTC)
	parent := domain.Income{
		IncomeID:  "inc-1",
		StudentID: "S-1",
		Amount:    decimal.NewFromInt(3000),
		Date:      now.Add(-time.Hour),
		ReceiptID: "R1",
	}

	superseded, consumed, remainder := domain.SplitIncome(parent, decimal.NewFromInt(1500), "inc-2", "inc-3", now, "staff-1")

	assert.False(t, superseded.IsEffective())
	assert.Equal(t, "inc-2", *superseded.SupersededBy)
	assert.True(t, superseded.Amount.Equal(decimal.NewFromInt(3000)), "parent amount is never edited")

	assert.True(t, consumed.Amount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, remainder.Amount.Equal(decimal.NewFromInt(1500)))
	for _, child := range []domain.Income{consumed, remainder} {
		assert.Equal(t, "inc-1", *child.ParentIncomeID)
		assert.Equal(t, "R1", child.ReceiptID)
		assert.Equal(t, parent.Date, child.Date)
		assert.True(t, child.IsOpen())
	}
}
