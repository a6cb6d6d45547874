package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/core/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/SscSPs/academy_fee_ledger/internal/platform/config"
	"github.com/SscSPs/academy_fee_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const staffID = "staff-1"

var march = domain.NewPeriod(2026, time.March)

// recordingPublisher collects published activities.
type recordingPublisher struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func (p *recordingPublisher) Publish(a domain.Activity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activities = append(p.activities, a)
}

func (p *recordingPublisher) kinds() []domain.ActivityKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityKind, len(p.activities))
	for i, a := range p.activities {
		out[i] = a.Kind
	}
	return out
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type LedgerServicesTestSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	publisher *recordingPublisher
	svc       *portssvc.ServiceContainer
}

func (suite *LedgerServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()
	// Early in the month, before the due date on the 10th.
	suite.now = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	suite.publisher = &recordingPublisher{}

	cfg := &config.Config{
		FeeDueDay:              10,
		TeacherSharePercent:    dec(70),
		CurrencyPrecision:      0,
		Location:               time.UTC,
		MaxTxRetries:           20,
		TxRetryInitialInterval: time.Millisecond,
		TxRetryMaxInterval:     5 * time.Millisecond,
		FeeGenerationWorkers:   4,
	}
	repos := memory.NewRepositoryProvider(memory.NewStore())
	suite.svc = services.NewServiceContainer(cfg, *repos,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithActivityPublisher(suite.publisher),
	)
}

func TestLedgerServicesTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServicesTestSuite))
}

// --- helpers ---

func (suite *LedgerServicesTestSuite) createStudent(id string) *domain.Student {
	student, err := suite.svc.Student.CreateStudent(suite.ctx, dto.CreateStudentRequest{
		StudentID:  id,
		Name:       "Student " + id,
		Class:      "10-A",
		MonthlyFee: dec(3000),
		Subjects: []dto.SubjectShareRequest{
			{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(1500)},
			{SubjectName: "Physics", TeacherID: "T2", FeeShare: dec(1500)},
		},
	}, staffID)
	suite.Require().NoError(err)
	return student
}

// billedStudentWithShares registers a student whose monthly fee is the sum of
// the given shares and bills the current month.
func (suite *LedgerServicesTestSuite) billedStudentWithShares(id string, shares ...dto.SubjectShareRequest) {
	monthly := decimal.Zero
	for _, sh := range shares {
		monthly = monthly.Add(sh.FeeShare)
	}
	_, err := suite.svc.Student.CreateStudent(suite.ctx, dto.CreateStudentRequest{
		StudentID:  id,
		Name:       "Student " + id,
		Class:      "11-B",
		MonthlyFee: monthly,
		Subjects:   shares,
	}, staffID)
	suite.Require().NoError(err)
	_, err = suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
}

func (suite *LedgerServicesTestSuite) billedStudent(id string) {
	suite.createStudent(id)
	billed, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
	suite.Require().GreaterOrEqual(billed, 1)
}

func (suite *LedgerServicesTestSuite) balance(id string) *domain.StudentBalance {
	b, err := suite.svc.Payment.GetStudentBalance(suite.ctx, id)
	suite.Require().NoError(err)
	return b
}

func (suite *LedgerServicesTestSuite) liveExpenses() []dto.ExpenseResponse {
	resp, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{Limit: 100})
	suite.Require().NoError(err)
	return resp.Expenses
}

// --- student registry ---

func (suite *LedgerServicesTestSuite) TestCreateStudent_StartsUnbilledAndPaid() {
	student := suite.createStudent("S1")

	suite.True(student.TotalFee.IsZero())
	suite.Equal(domain.FeeStatusPaid, student.FeeStatus)
	suite.True(student.LastFeeGeneratedPeriod.IsZero())
	suite.True(student.IsActive)
	suite.Equal(staffID, student.CreatedBy)
}

func (suite *LedgerServicesTestSuite) TestCreateStudent_FeeShareMismatch() {
	_, err := suite.svc.Student.CreateStudent(suite.ctx, dto.CreateStudentRequest{
		StudentID:  "S1",
		Name:       "Mismatch",
		Class:      "9",
		MonthlyFee: dec(3000),
		Subjects: []dto.SubjectShareRequest{
			{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(1500)},
			{SubjectName: "Physics", TeacherID: "T2", FeeShare: dec(1400)},
		},
	}, staffID)

	suite.ErrorIs(err, domain.ErrFeeShareMismatch)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Student.GetStudent(suite.ctx, "S1")
	suite.ErrorIs(err, domain.ErrStudentNotFound)
}

func (suite *LedgerServicesTestSuite) TestCreateStudent_RequiresSubjects() {
	_, err := suite.svc.Student.CreateStudent(suite.ctx, dto.CreateStudentRequest{
		StudentID: "S1", Name: "No subjects", Class: "9", MonthlyFee: dec(0),
	}, staffID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServicesTestSuite) TestCreateStudent_Duplicate() {
	suite.createStudent("S1")
	_, err := suite.svc.Student.CreateStudent(suite.ctx, dto.CreateStudentRequest{
		StudentID: "S1", Name: "Again", Class: "9", MonthlyFee: dec(100),
		Subjects: []dto.SubjectShareRequest{{SubjectName: "Art", TeacherID: "T3", FeeShare: dec(100)}},
	}, staffID)
	suite.ErrorIs(err, domain.ErrDuplicateStudent)
}

func (suite *LedgerServicesTestSuite) TestUpdateFeeStructure() {
	suite.billedStudent("S1")

	updated, err := suite.svc.Student.UpdateFeeStructure(suite.ctx, "S1", dto.UpdateFeeStructureRequest{
		MonthlyFee: dec(4000),
		Subjects: []dto.SubjectShareRequest{
			{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(2500)},
			{SubjectName: "Physics", TeacherID: "T2", FeeShare: dec(1500)},
		},
	}, staffID)
	suite.Require().NoError(err)
	suite.True(dec(4000).Equal(updated.MonthlyFee))
	suite.True(dec(3000).Equal(updated.TotalFee), "editing the fee structure keeps the balance")
	suite.Equal(domain.FeeStatusPartial, updated.FeeStatus)

	_, err = suite.svc.Student.UpdateFeeStructure(suite.ctx, "S1", dto.UpdateFeeStructureRequest{
		MonthlyFee: dec(4000),
		Subjects:   []dto.SubjectShareRequest{{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(3900)}},
	}, staffID)
	suite.ErrorIs(err, domain.ErrFeeShareMismatch)

	student, err := suite.svc.Student.GetStudent(suite.ctx, "S1")
	suite.Require().NoError(err)
	suite.Len(student.Subjects, 2, "rejected edit leaves the stored structure untouched")
}

func (suite *LedgerServicesTestSuite) TestListStudents_FiltersByStatus() {
	suite.createStudent("S1")
	suite.billedStudent("S2")

	pending, err := suite.svc.Student.ListStudents(suite.ctx, dto.ListStudentsParams{FeeStatus: "PENDING"})
	suite.Require().NoError(err)
	suite.Len(pending, 2)

	_, err = suite.svc.Student.ListStudents(suite.ctx, dto.ListStudentsParams{FeeStatus: "LATE"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- fee generation ---

func (suite *LedgerServicesTestSuite) TestGenerateMonthlyFees_Idempotent() {
	suite.createStudent("S1")
	suite.createStudent("S2")

	billed, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
	suite.Equal(2, billed)

	b := suite.balance("S1")
	suite.True(dec(3000).Equal(b.TotalFee))
	suite.Equal(domain.FeeStatusPending, b.FeeStatus)
	suite.Equal(march, b.LastFeeGeneratedPeriod)

	billed, err = suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
	suite.Zero(billed)
	suite.True(dec(3000).Equal(suite.balance("S1").TotalFee))
}

func (suite *LedgerServicesTestSuite) TestGenerateMonthlyFees_ExistingBalanceBecomesOverdue() {
	suite.createStudent("S1")
	february := domain.NewPeriod(2026, time.February)

	_, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, february)
	suite.Require().NoError(err)
	suite.Equal(domain.FeeStatusOverdue, suite.balance("S1").FeeStatus, "February is past its due date")

	_, err = suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
	b := suite.balance("S1")
	suite.True(dec(6000).Equal(b.TotalFee))
	suite.Equal(domain.FeeStatusOverdue, b.FeeStatus)

	// An older period never bills again once a later one was generated.
	billed, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, february)
	suite.Require().NoError(err)
	suite.Zero(billed)
}

func (suite *LedgerServicesTestSuite) TestGenerateMonthlyFees_SkipsInactiveStudents() {
	suite.createStudent("S1")
	inactive := false
	_, err := suite.svc.Student.UpdateFeeStructure(suite.ctx, "S1", dto.UpdateFeeStructureRequest{
		MonthlyFee: dec(3000),
		Subjects: []dto.SubjectShareRequest{
			{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(1500)},
			{SubjectName: "Physics", TeacherID: "T2", FeeShare: dec(1500)},
		},
		IsActive: &inactive,
	}, staffID)
	suite.Require().NoError(err)

	billed, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
	suite.Require().NoError(err)
	suite.Zero(billed)
}

func (suite *LedgerServicesTestSuite) TestGenerateMonthlyFees_RejectsInvalidPeriods() {
	_, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, domain.Period{})
	suite.ErrorIs(err, domain.ErrInvalidPeriod)

	_, err = suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march.Next())
	suite.ErrorIs(err, domain.ErrInvalidPeriod)
}

func (suite *LedgerServicesTestSuite) TestGenerateMonthlyFees_ConcurrentRunsBillOnce() {
	for _, id := range []string{"S1", "S2", "S3", "S4", "S5"} {
		suite.createStudent(id)
	}

	var wg sync.WaitGroup
	results := make([]int, 3)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			billed, err := suite.svc.Fee.GenerateMonthlyFees(suite.ctx, march)
			suite.NoError(err)
			results[i] = billed
		}()
	}
	wg.Wait()

	suite.Equal(5, results[0]+results[1]+results[2])
	for _, id := range []string{"S1", "S2", "S3", "S4", "S5"} {
		suite.True(dec(3000).Equal(suite.balance(id).TotalFee), id)
	}
}

func (suite *LedgerServicesTestSuite) TestCurrentPeriod() {
	suite.Equal(march, suite.svc.Fee.CurrentPeriod())
}

// --- payments ---

func (suite *LedgerServicesTestSuite) TestRecordPayment_FullPaymentThenPayoutSplits70_30() {
	suite.billedStudent("S1")

	payment, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)
	suite.True(payment.Balance.IsZero())
	suite.Equal(domain.FeeStatusPaid, payment.Status)
	suite.Equal("R1", payment.Income.ReceiptID)

	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(result.Eligible)
	payout := result.Payout
	suite.True(dec(1500).Equal(payout.GrossEarnings))
	suite.True(dec(1050).Equal(payout.TeacherShare))
	suite.True(dec(450).Equal(payout.AcademyShare))
	suite.Equal(domain.PayoutIssued, payout.Status)
	suite.Require().Len(payout.ConsumedIncomeIDs, 1)

	// The 3000 receipt was split: 1500 consumed by T1, 1500 left open.
	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", false)
	suite.Require().NoError(err)
	suite.Require().Len(incomes, 2)
	var consumed, open decimal.Decimal
	for _, inc := range incomes {
		suite.Equal("R1", inc.ReceiptID)
		suite.NotNil(inc.ParentIncomeID)
		if inc.PayoutID != nil {
			suite.Equal(payout.PayoutID, *inc.PayoutID)
			suite.Equal(payout.ConsumedIncomeIDs[0], inc.IncomeID)
			consumed = consumed.Add(inc.Amount)
		} else {
			open = open.Add(inc.Amount)
		}
	}
	suite.True(dec(1500).Equal(consumed))
	suite.True(dec(1500).Equal(open))

	history, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", true)
	suite.Require().NoError(err)
	suite.Len(history, 3)

	report, err := suite.svc.Payout.GetPayoutReport(suite.ctx, payout.PayoutID)
	suite.Require().NoError(err)
	suite.Require().Len(report.StudentBreakdown, 1)
	suite.Equal("S1", report.StudentBreakdown[0].StudentID)
	suite.Equal("Mathematics", report.StudentBreakdown[0].SubjectName)
	suite.True(dec(1500).Equal(report.GrossEarnings))

	expenses := suite.liveExpenses()
	suite.Require().Len(expenses, 1)
	suite.Equal(domain.ExpenseSourcePayout, expenses[0].Source)
	suite.Equal(domain.PayoutExpenseCategory, expenses[0].Category)
	suite.Equal(payout.ExpenseID, expenses[0].ExpenseID)
	suite.True(dec(1050).Equal(expenses[0].Amount))

	// Balance is unaffected by payouts.
	suite.True(suite.balance("S1").TotalFee.IsZero())
}

func (suite *LedgerServicesTestSuite) TestReversePayout_AddsBackOnlyConsumedShare() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)
	issued, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	payoutID := issued.Payout.PayoutID

	reversal, err := suite.svc.Payout.ReversePayout(suite.ctx, payoutID, staffID)
	suite.Require().NoError(err)
	suite.False(reversal.AlreadyReversed)
	suite.Equal(issued.Payout.ConsumedIncomeIDs, reversal.VoidedIncomeIDs)
	suite.Require().Len(reversal.RestoredBalances, 1)

	b := suite.balance("S1")
	suite.True(dec(1500).Equal(b.TotalFee))
	suite.Equal(domain.FeeStatusPartial, b.FeeStatus)

	payout, err := suite.svc.Payout.GetPayout(suite.ctx, payoutID)
	suite.Require().NoError(err)
	suite.Equal(domain.PayoutReversed, payout.Status)
	suite.NotNil(payout.ReversedAt)

	_, err = suite.svc.Payout.GetPayoutReport(suite.ctx, payoutID)
	suite.ErrorIs(err, domain.ErrReportNotFound)
	suite.Empty(suite.liveExpenses())

	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", false)
	suite.Require().NoError(err)
	voided := 0
	for _, inc := range incomes {
		suite.Nil(inc.PayoutID)
		if inc.Voided {
			voided++
			suite.Equal(issued.Payout.ConsumedIncomeIDs[0], inc.IncomeID)
		}
	}
	suite.Equal(1, voided)

	// Reversing again is a successful no-op.
	again, err := suite.svc.Payout.ReversePayout(suite.ctx, payoutID, staffID)
	suite.Require().NoError(err)
	suite.True(again.AlreadyReversed)
	suite.True(dec(1500).Equal(suite.balance("S1").TotalFee))
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	suite.billedStudent("S1")

	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", decimal.Zero, "R2", staffID)
	suite.ErrorIs(err, domain.ErrInvalidAmount)
	_, err = suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(-10), "R3", staffID)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", true)
	suite.Require().NoError(err)
	suite.Empty(incomes)
	suite.True(dec(3000).Equal(suite.balance("S1").TotalFee))
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_ConcurrentPaymentsSerialize() {
	suite.billedStudent("S1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, amount := range []int64{1000, 2000} {
		i, amount := i, amount
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(amount), "", staffID)
		}()
	}
	wg.Wait()

	suite.Require().NoError(errs[0])
	suite.Require().NoError(errs[1])
	b := suite.balance("S1")
	suite.True(b.TotalFee.IsZero())
	suite.Equal(domain.FeeStatusPaid, b.FeeStatus)

	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", false)
	suite.Require().NoError(err)
	suite.Len(incomes, 2)
	suite.NotEqual(incomes[0].ReceiptID, incomes[1].ReceiptID)
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_PartialAndOverpayment() {
	suite.billedStudent("S1")

	partial, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(1000), "R1", staffID)
	suite.Require().NoError(err)
	suite.True(dec(2000).Equal(partial.Balance))
	suite.Equal(domain.FeeStatusPartial, partial.Status)

	over, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(5000), "R2", staffID)
	suite.Require().NoError(err)
	suite.True(over.Balance.IsZero(), "excess is dropped, not credited")
	suite.Equal(domain.FeeStatusPaid, over.Status)
	suite.True(dec(5000).Equal(over.Income.Amount))
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_DuplicateReceipt() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(1000), "R1", staffID)
	suite.Require().NoError(err)

	_, err = suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(1000), "R1", staffID)
	suite.ErrorIs(err, domain.ErrDuplicateReceipt)
	suite.True(dec(2000).Equal(suite.balance("S1").TotalFee), "rejected payment leaves the balance unchanged")
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_GeneratesReceipt() {
	suite.billedStudent("S1")
	payment, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(100), "  ", staffID)
	suite.Require().NoError(err)
	suite.Regexp(`^RCPT-[0-9A-F]{8}$`, payment.Income.ReceiptID)
}

func (suite *LedgerServicesTestSuite) TestRecordPayment_UnknownStudent() {
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "ghost", dec(100), "R1", staffID)
	suite.ErrorIs(err, domain.ErrStudentNotFound)
	_, err = suite.svc.Payment.GetStudentBalance(suite.ctx, "ghost")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.svc.Payment.ListIncomeForStudent(suite.ctx, "ghost", false)
	suite.ErrorIs(err, domain.ErrStudentNotFound)
}

// --- payouts ---

func (suite *LedgerServicesTestSuite) TestIssuePayout_NoDoubleCounting() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)

	first, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(first.Eligible)

	second, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.False(second.Eligible)
	suite.Nil(second.Payout)

	// T2's share is still covered by the remainder of the receipt.
	other, err := suite.svc.Payout.IssuePayout(suite.ctx, "T2", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(other.Eligible)
	suite.True(dec(1500).Equal(other.Payout.GrossEarnings))

	seen := map[string]bool{}
	for _, p := range []*domain.Payout{first.Payout, other.Payout} {
		for _, id := range p.ConsumedIncomeIDs {
			suite.False(seen[id], "income %s consumed twice", id)
			seen[id] = true
		}
	}
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_NoEligibleEarnings() {
	suite.billedStudent("S1")

	// Unpaid students contribute nothing.
	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.False(result.Eligible)

	// Unknown teacher.
	result, err = suite.svc.Payout.IssuePayout(suite.ctx, "T9", march, staffID)
	suite.Require().NoError(err)
	suite.False(result.Eligible)

	payouts, err := suite.svc.Payout.ListPayouts(suite.ctx, "T1", nil)
	suite.Require().NoError(err)
	suite.Empty(payouts)
	suite.Empty(suite.liveExpenses())
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_OnlyCountsIncomeOfThePeriod() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)

	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", domain.NewPeriod(2026, time.February), staffID)
	suite.Require().NoError(err)
	suite.False(result.Eligible)
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_AggregatesStudents() {
	suite.billedStudent("S1")
	suite.billedStudent("S2")
	for _, id := range []string{"S1", "S2"} {
		_, err := suite.svc.Payment.RecordPayment(suite.ctx, id, dec(3000), "R-"+id, staffID)
		suite.Require().NoError(err)
	}

	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(result.Eligible)
	suite.True(dec(3000).Equal(result.Payout.GrossEarnings))
	suite.True(dec(2100).Equal(result.Payout.TeacherShare))
	suite.True(dec(900).Equal(result.Payout.AcademyShare))
	suite.Len(result.Report.StudentBreakdown, 2)
	suite.Len(result.Payout.ConsumedIncomeIDs, 2)

	payouts, err := suite.svc.Payout.ListPayouts(suite.ctx, "T1", &march)
	suite.Require().NoError(err)
	suite.Len(payouts, 1)
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_WholeRowsAcrossPayments() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(1000), "R1", staffID)
	suite.Require().NoError(err)
	suite.now = suite.now.Add(time.Hour)
	_, err = suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(2000), "R2", staffID)
	suite.Require().NoError(err)

	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(result.Eligible)
	// R1 (1000) consumed whole, 500 split off R2.
	suite.Len(result.Payout.ConsumedIncomeIDs, 2)
	suite.True(dec(1500).Equal(result.Payout.GrossEarnings))
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_TeacherWithTwoSubjectsOnOneReceipt() {
	suite.billedStudentWithShares("S1",
		dto.SubjectShareRequest{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(1000)},
		dto.SubjectShareRequest{SubjectName: "Physics", TeacherID: "T1", FeeShare: dec(2000)},
	)
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "RX", staffID)
	suite.Require().NoError(err)

	result, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(result.Eligible)
	payout := result.Payout
	suite.True(dec(3000).Equal(payout.GrossEarnings))
	suite.True(dec(2100).Equal(payout.TeacherShare))
	suite.Len(result.Report.StudentBreakdown, 2)
	// 1000 split off the receipt, then the 2000 remainder consumed whole.
	suite.Len(payout.ConsumedIncomeIDs, 2)

	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", false)
	suite.Require().NoError(err)
	suite.Require().Len(incomes, 2)
	total := decimal.Zero
	for _, inc := range incomes {
		suite.Require().NotNil(inc.PayoutID, "income %s left open", inc.IncomeID)
		suite.Equal(payout.PayoutID, *inc.PayoutID)
		suite.Equal("RX", inc.ReceiptID)
		total = total.Add(inc.Amount)
	}
	suite.True(dec(3000).Equal(total))

	again, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.False(again.Eligible)

	reversal, err := suite.svc.Payout.ReversePayout(suite.ctx, payout.PayoutID, staffID)
	suite.Require().NoError(err)
	suite.ElementsMatch(payout.ConsumedIncomeIDs, reversal.VoidedIncomeIDs)
	b := suite.balance("S1")
	suite.True(dec(3000).Equal(b.TotalFee))
	suite.Equal(domain.FeeStatusPending, b.FeeStatus)
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_ChainedSplitsOfOneReceipt() {
	suite.billedStudentWithShares("S1",
		dto.SubjectShareRequest{SubjectName: "Mathematics", TeacherID: "T1", FeeShare: dec(1000)},
		dto.SubjectShareRequest{SubjectName: "Physics", TeacherID: "T1", FeeShare: dec(1000)},
		dto.SubjectShareRequest{SubjectName: "Chemistry", TeacherID: "T2", FeeShare: dec(1000)},
	)
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "RX", staffID)
	suite.Require().NoError(err)

	first, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(first.Eligible)
	suite.True(dec(2000).Equal(first.Payout.GrossEarnings))
	suite.Len(first.Payout.ConsumedIncomeIDs, 2)

	second, err := suite.svc.Payout.IssuePayout(suite.ctx, "T2", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(second.Eligible)
	suite.True(dec(1000).Equal(second.Payout.GrossEarnings))
	suite.Len(second.Payout.ConsumedIncomeIDs, 1)

	incomes, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", false)
	suite.Require().NoError(err)
	suite.Require().Len(incomes, 3)
	total := decimal.Zero
	for _, inc := range incomes {
		suite.NotNil(inc.PayoutID)
		total = total.Add(inc.Amount)
	}
	suite.True(dec(3000).Equal(total))

	// Receipt, first split pair, second split pair.
	history, err := suite.svc.Payment.ListIncomeForStudent(suite.ctx, "S1", true)
	suite.Require().NoError(err)
	suite.Len(history, 5)

	_, err = suite.svc.Payout.ReversePayout(suite.ctx, first.Payout.PayoutID, staffID)
	suite.Require().NoError(err)
	suite.True(dec(2000).Equal(suite.balance("S1").TotalFee))

	t2, err := suite.svc.Payout.GetPayout(suite.ctx, second.Payout.PayoutID)
	suite.Require().NoError(err)
	suite.Equal(domain.PayoutIssued, t2.Status)
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_Validation() {
	_, err := suite.svc.Payout.IssuePayout(suite.ctx, " ", march, staffID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Payout.IssuePayout(suite.ctx, "T1", domain.Period{}, staffID)
	suite.ErrorIs(err, domain.ErrInvalidPeriod)
}

func (suite *LedgerServicesTestSuite) TestIssuePayout_ConcurrentIssuanceProducesOnePayout() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	results := make([]*domain.PayoutResult, 4)
	errs := make([]error, 4)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
		}()
	}
	wg.Wait()

	eligible := 0
	for i := range results {
		if errs[i] != nil {
			suite.ErrorIs(errs[i], domain.ErrConcurrentModification)
			continue
		}
		if results[i].Eligible {
			eligible++
		}
	}
	suite.Equal(1, eligible)

	payouts, err := suite.svc.Payout.ListPayouts(suite.ctx, "T1", nil)
	suite.Require().NoError(err)
	suite.Len(payouts, 1)
}

func (suite *LedgerServicesTestSuite) TestReversePayout_AddsConsumedShareBackPerStudent() {
	suite.billedStudent("S1")
	suite.billedStudent("S2")
	for _, id := range []string{"S1", "S2"} {
		_, err := suite.svc.Payment.RecordPayment(suite.ctx, id, dec(3000), "R-"+id, staffID)
		suite.Require().NoError(err)
	}
	issued, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.Require().True(issued.Eligible)

	reversal, err := suite.svc.Payout.ReversePayout(suite.ctx, issued.Payout.PayoutID, staffID)
	suite.Require().NoError(err)
	suite.ElementsMatch(issued.Payout.ConsumedIncomeIDs, reversal.VoidedIncomeIDs)
	suite.Len(reversal.RestoredBalances, 2)
	for _, id := range []string{"S1", "S2"} {
		suite.True(dec(1500).Equal(suite.balance(id).TotalFee), id)
	}

	// Voided income can never be consumed again; the student has to pay again.
	again, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	suite.False(again.Eligible)
}

func (suite *LedgerServicesTestSuite) TestReversePayout_NotFound() {
	_, err := suite.svc.Payout.ReversePayout(suite.ctx, "missing", staffID)
	suite.ErrorIs(err, domain.ErrPayoutNotFound)
	_, err = suite.svc.Payout.GetPayoutReport(suite.ctx, "missing")
	suite.ErrorIs(err, domain.ErrPayoutNotFound)
}

// --- expenses ---

func (suite *LedgerServicesTestSuite) TestManualExpenseLifecycle() {
	created, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Description: "Whiteboard markers",
		Amount:      dec(250),
		Category:    "Supplies",
	}, staffID)
	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseSourceManual, created.Source)

	desc := "Markers and dusters"
	updated, err := suite.svc.Expense.UpdateExpense(suite.ctx, created.ExpenseID, dto.UpdateExpenseRequest{Description: &desc}, staffID)
	suite.Require().NoError(err)
	suite.Equal(desc, updated.Description)

	deletion, err := suite.svc.Expense.DeleteExpense(suite.ctx, created.ExpenseID, staffID)
	suite.Require().NoError(err)
	suite.Require().NotNil(deletion)
	suite.Equal(created.ExpenseID, deletion.ExpenseID)
	suite.Nil(deletion.Reversal)
	suite.Empty(suite.liveExpenses())

	_, err = suite.svc.Expense.GetExpense(suite.ctx, created.ExpenseID)
	suite.ErrorIs(err, domain.ErrExpenseNotFound)
	_, err = suite.svc.Expense.DeleteExpense(suite.ctx, created.ExpenseID, staffID)
	suite.ErrorIs(err, domain.ErrExpenseNotFound)
}

func (suite *LedgerServicesTestSuite) TestCreateExpense_Validation() {
	_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
		Description: "Nothing", Amount: decimal.Zero, Category: "Misc",
	}, staffID)
	suite.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{Amount: dec(10)}, staffID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServicesTestSuite) TestPayoutExpense_ProtectedAndDeletedThroughReversal() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)
	issued, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	expenseID := issued.Payout.ExpenseID

	amount := dec(1)
	_, err = suite.svc.Expense.UpdateExpense(suite.ctx, expenseID, dto.UpdateExpenseRequest{Amount: &amount}, staffID)
	suite.ErrorIs(err, domain.ErrPayoutExpenseImmutable)

	deletion, err := suite.svc.Expense.DeleteExpense(suite.ctx, expenseID, staffID)
	suite.Require().NoError(err)
	suite.Equal(expenseID, deletion.ExpenseID)
	suite.Require().NotNil(deletion.Reversal)
	suite.Equal(issued.Payout.PayoutID, deletion.Reversal.PayoutID)
	suite.False(deletion.Reversal.AlreadyReversed)

	payout, err := suite.svc.Payout.GetPayout(suite.ctx, issued.Payout.PayoutID)
	suite.Require().NoError(err)
	suite.Equal(domain.PayoutReversed, payout.Status)
	suite.True(dec(1500).Equal(suite.balance("S1").TotalFee))
}

func (suite *LedgerServicesTestSuite) TestListExpenses_FilterAndBounds() {
	for _, c := range []string{"Supplies", "Rent", "Supplies"} {
		_, err := suite.svc.Expense.CreateExpense(suite.ctx, dto.CreateExpenseRequest{
			Description: c, Amount: dec(100), Category: c,
		}, staffID)
		suite.Require().NoError(err)
	}

	resp, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{Category: "Supplies"})
	suite.Require().NoError(err)
	suite.Len(resp.Expenses, 2)

	resp, err = suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(resp.Expenses, 2)
	suite.Require().NotNil(resp.NextToken)
	next, err := suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{Limit: 2, NextToken: resp.NextToken})
	suite.Require().NoError(err)
	suite.Len(next.Expenses, 1)
	suite.Nil(next.NextToken)

	_, err = suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{From: "yesterday"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.svc.Expense.ListExpenses(suite.ctx, dto.ListExpensesParams{Source: "OTHER"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- activities ---

func (suite *LedgerServicesTestSuite) TestActivitiesRecordedAndPublished() {
	suite.billedStudent("S1")
	_, err := suite.svc.Payment.RecordPayment(suite.ctx, "S1", dec(3000), "R1", staffID)
	suite.Require().NoError(err)
	issued, err := suite.svc.Payout.IssuePayout(suite.ctx, "T1", march, staffID)
	suite.Require().NoError(err)
	_, err = suite.svc.Payout.ReversePayout(suite.ctx, issued.Payout.PayoutID, staffID)
	suite.Require().NoError(err)

	suite.Equal([]domain.ActivityKind{
		domain.ActivityFeesGenerated,
		domain.ActivityPaymentRecorded,
		domain.ActivityPayoutIssued,
		domain.ActivityPayoutReversed,
	}, suite.publisher.kinds())

	feed, err := suite.svc.Activity.ListRecentActivities(suite.ctx, dto.ListActivitiesParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Len(feed.Activities, 4)

	// Failed operations publish nothing.
	_, err = suite.svc.Payment.RecordPayment(suite.ctx, "S1", decimal.Zero, "", staffID)
	suite.Error(err)
	suite.Len(suite.publisher.kinds(), 4)
}

func (suite *LedgerServicesTestSuite) TestCancelledContext() {
	suite.billedStudent("S1")
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.svc.Payment.RecordPayment(ctx, "S1", dec(100), "R1", staffID)
	suite.True(errors.Is(err, context.Canceled))
}
