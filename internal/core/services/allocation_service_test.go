package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gastos-app/gastos_backend/internal/apperrors"
	"github.com/gastos-app/gastos_backend/internal/core/domain"
	portsrepo "github.com/gastos-app/gastos_backend/internal/core/ports/repositories"
	portssvc "github.com/gastos-app/gastos_backend/internal/core/ports/services"
	"github.com/gastos-app/gastos_backend/internal/core/services"
	"github.com/gastos-app/gastos_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AllocationRepository ---
type MockAllocationRepository struct {
	mock.Mock
}

var _ portsrepo.AllocationRepository = (*MockAllocationRepository)(nil)

func (m *MockAllocationRepository) FindAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error) {
	args := m.Called(ctx, userID, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) ListAllocations(ctx context.Context, userID string, filter portsrepo.AllocationListFilter) ([]domain.Allocation, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Allocation), args.Int(1), args.Error(2)
}

func (m *MockAllocationRepository) ListBudgetAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.Allocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockAllocationRepository) DeactivateAllocation(ctx context.Context, userID, allocationID string, now time.Time) error {
	args := m.Called(ctx, userID, allocationID, now)
	return args.Error(0)
}

func (m *MockAllocationRepository) ApplyBudgetImpactsInTx(ctx context.Context, tx pgx.Tx, impacts []domain.BudgetImpact, now time.Time) error {
	args := m.Called(ctx, tx, impacts, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AllocationServiceTestSuite struct {
	suite.Suite
	mockAllocationRepo *MockAllocationRepository
	mockAccountRepo    *MockAccountReader
	mockTxnRepo        *MockTransactionRepository
	service            portssvc.AllocationSvcFacade

	userID  string
	account domain.Account
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockAllocationRepo = new(MockAllocationRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAllocationService(suite.mockAllocationRepo, suite.mockAccountRepo, suite.mockTxnRepo)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Savings",
		AccountType: domain.AccountSavings,
		Currency:    "USD",
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *AllocationServiceTestSuite) TestCreateAllocation_BudgetDefaultsToMonthly() {
	ctx := context.Background()
	req := dto.CreateAllocationRequest{
		AccountID:      suite.account.AccountID,
		Name:           "Food",
		AllocationType: "budget",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, suite.account.AccountID).
		Return(&suite.account, nil).Once()

	var saved domain.Allocation
	suite.mockAllocationRepo.On("SaveAllocation", ctx, mock.AnythingOfType("domain.Allocation")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Allocation)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateAllocation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodMonthly, created.PeriodFrequency)
	suite.Equal(domain.CurrencyCode("USD"), created.Currency, "currency defaults from the account")
	suite.True(created.IsActive)
	suite.Nil(saved.PeriodStart, "the window initialises on the first budget impact")
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCreateAllocation_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateAllocationRequest{
		AccountID:      uuid.NewString(),
		Name:           "Food",
		AllocationType: "budget",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.userID, req.AccountID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAllocation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "SaveAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_BudgetConsumptionIsNotWritable() {
	ctx := context.Background()
	budget := domain.Allocation{
		AllocationID:    uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.account.AccountID,
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		IsActive:        true,
	}
	amount := decimal.NewFromInt(100)
	req := dto.UpdateAllocationRequest{CurrentAmount: &amount}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, budget.AllocationID).
		Return(&budget, nil).Once()

	_, err := suite.service.UpdateAllocation(ctx, suite.userID, budget.AllocationID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "UpdateAllocation", mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_SavingsCurrentAmountIsWritable() {
	ctx := context.Background()
	savings := domain.Allocation{
		AllocationID:   uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		AllocationType: domain.AllocationSavings,
		IsActive:       true,
	}
	amount := decimal.NewFromInt(250)
	req := dto.UpdateAllocationRequest{CurrentAmount: &amount}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, savings.AllocationID).
		Return(&savings, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.AnythingOfType("domain.Allocation")).
		Return(nil).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, savings.AllocationID, req)

	suite.Require().NoError(err)
	suite.True(updated.CurrentAmount.Equal(amount))
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestUpdateAllocation_FrequencyChangeResetsWindow() {
	ctx := context.Background()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	budget := domain.Allocation{
		AllocationID:    uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.account.AccountID,
		AllocationType:  domain.AllocationBudget,
		PeriodFrequency: domain.PeriodMonthly,
		PeriodStart:     &start,
		PeriodEnd:       &end,
		CurrentAmount:   decimal.NewFromInt(80),
		IsActive:        true,
	}
	freq := "weekly"
	req := dto.UpdateAllocationRequest{PeriodFrequency: &freq}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, budget.AllocationID).
		Return(&budget, nil).Once()
	suite.mockAllocationRepo.On("UpdateAllocation", ctx, mock.AnythingOfType("domain.Allocation")).
		Return(nil).Once()

	updated, err := suite.service.UpdateAllocation(ctx, suite.userID, budget.AllocationID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodWeekly, updated.PeriodFrequency)
	suite.Nil(updated.PeriodStart)
	suite.Nil(updated.PeriodEnd)
	suite.True(updated.CurrentAmount.IsZero())
}

func (suite *AllocationServiceTestSuite) TestGetProgress() {
	ctx := context.Background()
	targetDate := time.Now().UTC().AddDate(0, 6, 0)
	goal := domain.Allocation{
		AllocationID:   uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		AllocationType: domain.AllocationGoal,
		TargetAmount:   decimal.NewFromInt(1000),
		CurrentAmount:  decimal.NewFromInt(250),
		MonthlyTarget:  decimal.NewFromInt(100),
		TargetDate:     &targetDate,
		IsActive:       true,
	}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, goal.AllocationID).
		Return(&goal, nil).Once()
	suite.mockTxnRepo.On("SumByAllocationAndType", ctx, goal.AllocationID, domain.Credit, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(75), nil).Once()

	progress, err := suite.service.GetProgress(ctx, suite.userID, goal.AllocationID)

	suite.Require().NoError(err)
	suite.True(progress.ProgressPercentage.Equal(decimal.NewFromInt(25)))
	suite.True(progress.RemainingAmount.Equal(decimal.NewFromInt(750)))
	suite.True(progress.MonthlyProgress.Equal(decimal.NewFromInt(75)))
	suite.Require().NotNil(progress.DaysRemaining)
	suite.Greater(*progress.DaysRemaining, 0)
}

func (suite *AllocationServiceTestSuite) TestGetProgress_ZeroTarget() {
	ctx := context.Background()
	alloc := domain.Allocation{
		AllocationID:   uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.account.AccountID,
		AllocationType: domain.AllocationSavings,
		CurrentAmount:  decimal.NewFromInt(50),
		IsActive:       true,
	}

	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, alloc.AllocationID).
		Return(&alloc, nil).Once()
	suite.mockTxnRepo.On("SumByAllocationAndType", ctx, alloc.AllocationID, domain.Credit, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, nil).Once()

	progress, err := suite.service.GetProgress(ctx, suite.userID, alloc.AllocationID)

	suite.Require().NoError(err)
	suite.True(progress.ProgressPercentage.IsZero(), "a zero target never divides")
}

func (suite *AllocationServiceTestSuite) TestGetGoalsSummary() {
	ctx := context.Background()
	goals := []domain.Allocation{
		{
			AllocationID:   uuid.NewString(),
			Name:           "Emergency fund",
			AllocationType: domain.AllocationGoal,
			TargetAmount:   decimal.NewFromInt(3000),
			CurrentAmount:  decimal.NewFromInt(1500),
		},
		{
			AllocationID:   uuid.NewString(),
			Name:           "Vacation",
			AllocationType: domain.AllocationGoal,
			TargetAmount:   decimal.NewFromInt(1000),
			CurrentAmount:  decimal.NewFromInt(500),
		},
	}

	suite.mockAllocationRepo.On("ListAllocations", ctx, suite.userID, mock.AnythingOfType("repositories.AllocationListFilter")).
		Return(goals, len(goals), nil).Once()

	summary, err := suite.service.GetGoalsSummary(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, summary.TotalGoals)
	suite.True(summary.TotalTargetAmount.Equal(decimal.NewFromInt(4000)))
	suite.True(summary.TotalCurrentAmount.Equal(decimal.NewFromInt(2000)))
	suite.True(summary.TotalProgressPercentage.Equal(decimal.NewFromInt(50)))
	suite.Len(summary.Goals, 2)
}

func TestAllocationService(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
