package handlers_test

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock StudentService ---
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) GetStudent(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentService) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Student), args.Error(1)
}
func (m *MockStudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, actorID string) (*domain.Student, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockStudentService) UpdateFeeStructure(ctx context.Context, studentID string, req dto.UpdateFeeStructureRequest, actorID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

var _ portssvc.StudentSvcFacade = (*MockStudentService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, studentID string, amount decimal.Decimal, receiptID string, actorID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, studentID, amount, receiptID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockPaymentService) GetStudentBalance(ctx context.Context, studentID string) (*domain.StudentBalance, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentBalance), args.Error(1)
}
func (m *MockPaymentService) ListIncomeForStudent(ctx context.Context, studentID string, includeHistory bool) ([]domain.Income, error) {
	args := m.Called(ctx, studentID, includeHistory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) GenerateMonthlyFees(ctx context.Context, period domain.Period) (int, error) {
	args := m.Called(ctx, period)
	return args.Int(0), args.Error(1)
}
func (m *MockFeeService) CurrentPeriod() domain.Period {
	args := m.Called()
	return args.Get(0).(domain.Period)
}

var _ portssvc.FeeSvcFacade = (*MockFeeService)(nil)

// --- Mock PayoutService ---
type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) IssuePayout(ctx context.Context, teacherID string, period domain.Period, actorID string) (*domain.PayoutResult, error) {
	args := m.Called(ctx, teacherID, period, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutResult), args.Error(1)
}
func (m *MockPayoutService) ReversePayout(ctx context.Context, payoutID string, actorID string) (*domain.ReversalResult, error) {
	args := m.Called(ctx, payoutID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalResult), args.Error(1)
}
func (m *MockPayoutService) GetPayout(ctx context.Context, payoutID string) (*domain.Payout, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutService) GetPayoutReport(ctx context.Context, payoutID string) (*domain.Report, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockPayoutService) ListPayouts(ctx context.Context, teacherID string, period *domain.Period) ([]domain.Payout, error) {
	args := m.Called(ctx, teacherID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payout), args.Error(1)
}

var _ portssvc.PayoutSvcFacade = (*MockPayoutService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID string, actorID string) (*domain.ExpenseDeletion, error) {
	args := m.Called(ctx, expenseID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseDeletion), args.Error(1)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock ActivityService ---
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ListRecentActivities(ctx context.Context, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListActivitiesResponse), args.Error(1)
}

var _ portssvc.ActivitySvcFacade = (*MockActivityService)(nil)
