package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func income(id string, amount int64) domain.Income {
	return domain.Income{
		IncomeID:  id,
		StudentID: "S1",
		Amount:    decimal.NewFromInt(amount),
		Date:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAllocateShare(t *testing.T) {
	payoutID := "P0"
	consumed := income("I0", 500)
	consumed.PayoutID = &payoutID
	voided := income("V0", 500)
	voided.Voided = true

	tests := []struct {
		name        string
		open        []domain.Income
		share       int64
		wantOK      bool
		wantWhole   []string
		wantPartial string
		wantAmount  int64
	}{
		{name: "exact single row", open: []domain.Income{income("I1", 1500)}, share: 1500, wantOK: true, wantWhole: []string{"I1"}},
		{name: "split single row", open: []domain.Income{income("I1", 3000)}, share: 1500, wantOK: true, wantPartial: "I1", wantAmount: 1500},
		{name: "whole then partial", open: []domain.Income{income("I1", 1000), income("I2", 2000)}, share: 1500, wantOK: true, wantWhole: []string{"I1"}, wantPartial: "I2", wantAmount: 500},
		{name: "skips consumed and voided rows", open: []domain.Income{consumed, voided, income("I1", 1500)}, share: 1500, wantOK: true, wantWhole: []string{"I1"}},
		{name: "insufficient income", open: []domain.Income{income("I1", 1000)}, share: 1500, wantOK: false},
		{name: "no income", open: nil, share: 1500, wantOK: false},
		{name: "zero share", open: []domain.Income{income("I1", 1000)}, share: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, ok := AllocateShare(tt.open, decimal.NewFromInt(tt.share))
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Empty(t, alloc.Whole)
				assert.Nil(t, alloc.Partial)
				return
			}

			var whole []string
			for _, inc := range alloc.Whole {
				whole = append(whole, inc.IncomeID)
			}
			assert.Equal(t, tt.wantWhole, whole)
			if tt.wantPartial == "" {
				assert.Nil(t, alloc.Partial)
			} else {
				require.NotNil(t, alloc.Partial)
				assert.Equal(t, tt.wantPartial, alloc.Partial.IncomeID)
				assert.True(t, decimal.NewFromInt(tt.wantAmount).Equal(alloc.PartialAmount))
			}
			assert.True(t, decimal.NewFromInt(tt.share).Equal(alloc.Total()))
		})
	}
}

func TestValidatePayoutTotals(t *testing.T) {
	lines := []domain.ReportLine{
		{StudentID: "S1", SubjectName: "Mathematics", FeeShare: decimal.NewFromInt(1500)},
		{StudentID: "S2", SubjectName: "Mathematics", FeeShare: decimal.NewFromInt(1200)},
	}
	payout := domain.Payout{
		GrossEarnings: decimal.NewFromInt(2700),
		TeacherShare:  decimal.NewFromInt(1890),
		AcademyShare:  decimal.NewFromInt(810),
	}
	require.NoError(t, ValidatePayoutTotals(payout, lines))

	wrongGross := payout
	wrongGross.GrossEarnings = decimal.NewFromInt(2800)
	assert.Error(t, ValidatePayoutTotals(wrongGross, lines))

	wrongSplit := payout
	wrongSplit.AcademyShare = decimal.NewFromInt(800)
	assert.Error(t, ValidatePayoutTotals(wrongSplit, lines))

	zeroShare := append([]domain.ReportLine{}, lines...)
	zeroShare[1].FeeShare = decimal.Zero
	assert.Error(t, ValidatePayoutTotals(domain.Payout{GrossEarnings: decimal.NewFromInt(1500), TeacherShare: decimal.NewFromInt(1050), AcademyShare: decimal.NewFromInt(450)}, zeroShare))
}

func TestSumByStudent(t *testing.T) {
	other := income("I3", 700)
	other.StudentID = "S2"
	sums := SumByStudent([]domain.Income{income("I1", 1000), income("I2", 500), other})

	require.Len(t, sums, 2)
	assert.True(t, decimal.NewFromInt(1500).Equal(sums["S1"]))
	assert.True(t, decimal.NewFromInt(700).Equal(sums["S2"]))
}
