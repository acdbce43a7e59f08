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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) ListPostedByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumByAllocationAndType(ctx context.Context, allocationID string, txnType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, allocationID, txnType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) CreateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	args := m.Called(ctx, txn, balanceChanges, impacts)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateLedgerEntry(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	args := m.Called(ctx, txn, balanceChanges, impacts)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteLedgerEntry(ctx context.Context, userID, transactionID string, balanceChanges map[string]decimal.Decimal, impacts []domain.BudgetImpact) error {
	args := m.Called(ctx, userID, transactionID, balanceChanges, impacts)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetReceiptURL(ctx context.Context, userID, transactionID, receiptURL string, now time.Time) error {
	args := m.Called(ctx, userID, transactionID, receiptURL, now)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, userID string, filter portsrepo.AccountListFilter) ([]domain.Account, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Int(1), args.Error(2)
}

// --- Mock CategoryReader ---
type MockCategoryReader struct {
	mock.Mock
}

var _ portsrepo.CategoryReader = (*MockCategoryReader)(nil)

func (m *MockCategoryReader) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryReader) ListCategories(ctx context.Context, userID string, filter portsrepo.CategoryListFilter) ([]domain.Category, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Category), args.Int(1), args.Error(2)
}

// --- Mock AllocationReader ---
type MockAllocationReader struct {
	mock.Mock
}

var _ portsrepo.AllocationReader = (*MockAllocationReader)(nil)

func (m *MockAllocationReader) FindAllocationByID(ctx context.Context, userID, allocationID string) (*domain.Allocation, error) {
	args := m.Called(ctx, userID, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}

func (m *MockAllocationReader) ListAllocations(ctx context.Context, userID string, filter portsrepo.AllocationListFilter) ([]domain.Allocation, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Allocation), args.Int(1), args.Error(2)
}

func (m *MockAllocationReader) ListBudgetAllocations(ctx context.Context, userID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

// --- Mock BudgetEntryReader ---
type MockBudgetEntryReader struct {
	mock.Mock
}

var _ portsrepo.BudgetEntryReader = (*MockBudgetEntryReader)(nil)

func (m *MockBudgetEntryReader) FindBudgetEntryByID(ctx context.Context, userID, budgetEntryID string) (*domain.BudgetEntry, error) {
	args := m.Called(ctx, userID, budgetEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetEntry), args.Error(1)
}

func (m *MockBudgetEntryReader) ListBudgetEntries(ctx context.Context, userID string, filter portsrepo.BudgetEntryListFilter) ([]domain.BudgetEntry, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BudgetEntry), args.Int(1), args.Error(2)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo         *MockTransactionRepository
	mockAccountRepo     *MockAccountReader
	mockCategoryRepo    *MockCategoryReader
	mockAllocationRepo  *MockAllocationReader
	mockBudgetEntryRepo *MockBudgetEntryReader
	service             portssvc.TransactionSvcFacade

	userID          string
	checkingAccount domain.Account
	euroAccount     domain.Account
	groceryCategory domain.Category
	foodBudget      domain.Allocation
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockCategoryRepo = new(MockCategoryReader)
	suite.mockAllocationRepo = new(MockAllocationReader)
	suite.mockBudgetEntryRepo = new(MockBudgetEntryReader)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockCategoryRepo,
		suite.mockAllocationRepo,
		suite.mockBudgetEntryRepo,
	)

	suite.userID = uuid.NewString()
	suite.checkingAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Checking",
		AccountType: domain.AccountChecking,
		Currency:    "USD",
		IsActive:    true,
	}
	suite.euroAccount = domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      suite.userID,
		Name:        "Euro Savings",
		AccountType: domain.AccountSavings,
		Currency:    "EUR",
		IsActive:    true,
	}
	suite.groceryCategory = domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     suite.userID,
		Name:       "Groceries",
		IsExpense:  true,
		IsActive:   true,
	}
	suite.foodBudget = domain.Allocation{
		AllocationID:   uuid.NewString(),
		UserID:         suite.userID,
		AccountID:      suite.checkingAccount.AccountID,
		Name:           "Food",
		AllocationType: domain.AllocationBudget,
		TargetAmount:   decimal.NewFromInt(400),
		Currency:       "USD",
		Configuration: map[string]any{
			domain.ConfigKeyCategoryIDs: []any{suite.groceryCategory.CategoryID},
		},
		IsActive: true,
	}
}

func (suite *TransactionServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DebitAppliesBalanceAndBudget() {
	ctx := context.Background()
	txnDate := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		AccountID:       suite.checkingAccount.AccountID,
		CategoryID:      &suite.groceryCategory.CategoryID,
		Amount:          decimal.NewFromInt(50),
		TransactionType: "debit",
		TransactionDate: txnDate,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, []string{suite.checkingAccount.AccountID}).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.userID, suite.groceryCategory.CategoryID).
		Return(&suite.groceryCategory, nil).Once()
	suite.mockAllocationRepo.On("ListBudgetAllocations", ctx, suite.userID).
		Return([]domain.Allocation{suite.foodBudget}, nil).Once()

	var gotChanges map[string]decimal.Decimal
	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("CreateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(2).(map[string]decimal.Decimal)
			gotImpacts = args.Get(3).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TransactionID)
	suite.True(created.IsPosted)
	suite.Equal(domain.CurrencyCode("USD"), created.Currency, "currency defaults from the account")

	suite.Require().Len(gotChanges, 1)
	suite.True(gotChanges[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-50)))
	suite.Require().Len(gotImpacts, 1)
	suite.Equal(suite.foodBudget.AllocationID, gotImpacts[0].AllocationID)
	suite.True(gotImpacts[0].Delta.Equal(decimal.NewFromInt(50)))
	suite.Equal(txnDate, gotImpacts[0].ReferenceDate)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAllocationRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnpostedHasNoEffects() {
	ctx := context.Background()
	posted := false
	req := dto.CreateTransactionRequest{
		AccountID:       suite.checkingAccount.AccountID,
		Amount:          decimal.NewFromInt(25),
		TransactionType: "debit",
		TransactionDate: time.Now(),
		IsPosted:        &posted,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()

	var gotChanges map[string]decimal.Decimal
	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("CreateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges, _ = args.Get(2).(map[string]decimal.Decimal)
			gotImpacts, _ = args.Get(3).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.False(created.IsPosted)
	suite.Empty(gotChanges)
	suite.Empty(gotImpacts)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "ListBudgetAllocations", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferDefaultsToDestinationCurrency() {
	ctx := context.Background()
	fee := decimal.NewFromInt(2)
	req := dto.CreateTransactionRequest{
		AccountID:             suite.checkingAccount.AccountID,
		Amount:                decimal.NewFromInt(100),
		TransactionType:       "transfer",
		TransferFromAccountID: &suite.checkingAccount.AccountID,
		TransferToAccountID:   &suite.euroAccount.AccountID,
		TransferFee:           &fee,
		TransactionDate:       time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount, suite.euroAccount), nil).Once()

	var gotChanges map[string]decimal.Decimal
	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("CreateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(2).(map[string]decimal.Decimal)
			gotImpacts, _ = args.Get(3).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyCode("EUR"), created.Currency, "transfers default to the destination currency")

	suite.Require().Len(gotChanges, 2)
	suite.True(gotChanges[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-102)), "source pays amount plus fee")
	suite.True(gotChanges[suite.euroAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.Empty(gotImpacts, "transfers never touch budgets")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:       uuid.NewString(),
		Amount:          decimal.NewFromInt(10),
		TransactionType: "debit",
		TransactionDate: time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(map[string]domain.Account{}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "CreateLedgerEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InvalidTransfer() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:             suite.checkingAccount.AccountID,
		Amount:                decimal.NewFromInt(10),
		TransactionType:       "transfer",
		TransferFromAccountID: &suite.checkingAccount.AccountID,
		TransferToAccountID:   &suite.checkingAccount.AccountID,
		TransactionDate:       time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BudgetEntryLinkDerivesRecurrence() {
	ctx := context.Background()
	entry := domain.BudgetEntry{
		BudgetEntryID: uuid.NewString(),
		UserID:        suite.userID,
		Name:          "Rent",
		Cadence:       domain.RecurMonthly,
	}
	req := dto.CreateTransactionRequest{
		AccountID:       suite.checkingAccount.AccountID,
		BudgetEntryID:   &entry.BudgetEntryID,
		Amount:          decimal.NewFromInt(900),
		TransactionType: "debit",
		TransactionDate: time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()
	suite.mockBudgetEntryRepo.On("FindBudgetEntryByID", ctx, suite.userID, entry.BudgetEntryID).
		Return(&entry, nil).Once()
	suite.mockTxnRepo.On("CreateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(created.IsRecurring)
	suite.Require().NotNil(created.RecurrenceFrequency)
	suite.Equal(domain.RecurMonthly, *created.RecurrenceFrequency)
	suite.mockBudgetEntryRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_LinkedAllocationNotDoubleCounted() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:       suite.checkingAccount.AccountID,
		CategoryID:      &suite.groceryCategory.CategoryID,
		AllocationID:    &suite.foodBudget.AllocationID,
		Amount:          decimal.NewFromInt(30),
		TransactionType: "debit",
		TransactionDate: time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.userID, suite.groceryCategory.CategoryID).
		Return(&suite.groceryCategory, nil).Once()
	// Resolved once as a link and once for budget matching.
	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, suite.foodBudget.AllocationID).
		Return(&suite.foodBudget, nil)
	// The category also matches the linked allocation.
	suite.mockAllocationRepo.On("ListBudgetAllocations", ctx, suite.userID).
		Return([]domain.Allocation{suite.foodBudget}, nil).Once()

	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("CreateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotImpacts = args.Get(3).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().Len(gotImpacts, 1, "an allocation matched twice receives one impact")
	suite.Equal(suite.foodBudget.AllocationID, gotImpacts[0].AllocationID)
	suite.True(gotImpacts[0].Delta.Equal(decimal.NewFromInt(30)))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeMergesEffects() {
	ctx := context.Background()
	old := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.checkingAccount.AccountID,
		Amount:          decimal.NewFromInt(50),
		Currency:        "USD",
		TransactionType: domain.Debit,
		TransactionDate: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		IsPosted:        true,
	}
	newAmount := decimal.NewFromInt(80)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, old.TransactionID).
		Return(&old, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()

	var gotChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, old.TransactionID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.Require().NotNil(updated.UpdatedAt)

	// Reversal of -50 plus application of -80.
	suite.Require().Len(gotChanges, 1)
	suite.True(gotChanges[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-30)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_UnpostingReversesOnly() {
	ctx := context.Background()
	old := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.checkingAccount.AccountID,
		Amount:          decimal.NewFromInt(40),
		Currency:        "USD",
		TransactionType: domain.Credit,
		TransactionDate: time.Now().UTC(),
		IsPosted:        true,
	}
	posted := false
	req := dto.UpdateTransactionRequest{IsPosted: &posted}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, old.TransactionID).
		Return(&old, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.userID, mock.Anything).
		Return(suite.accountsMap(suite.checkingAccount), nil).Once()

	var gotChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("UpdateLedgerEntry", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, old.TransactionID, req)

	suite.Require().NoError(err)
	suite.False(updated.IsPosted)
	suite.Require().Len(gotChanges, 1)
	suite.True(gotChanges[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(-40)), "the posted credit is backed out")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, transactionID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, transactionID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateLedgerEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesPostedEffects() {
	ctx := context.Background()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.checkingAccount.AccountID,
		CategoryID:      &suite.groceryCategory.CategoryID,
		Amount:          decimal.NewFromInt(50),
		Currency:        "USD",
		TransactionType: domain.Debit,
		TransactionDate: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		IsPosted:        true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, txn.TransactionID).
		Return(&txn, nil).Once()
	suite.mockAllocationRepo.On("ListBudgetAllocations", ctx, suite.userID).
		Return([]domain.Allocation{suite.foodBudget}, nil).Once()

	var gotChanges map[string]decimal.Decimal
	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("DeleteLedgerEntry", ctx, suite.userID, txn.TransactionID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges = args.Get(3).(map[string]decimal.Decimal)
			gotImpacts = args.Get(4).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Require().Len(gotChanges, 1)
	suite.True(gotChanges[suite.checkingAccount.AccountID].Equal(decimal.NewFromInt(50)), "the debit is handed back")
	suite.Require().Len(gotImpacts, 1)
	suite.True(gotImpacts[0].Delta.Equal(decimal.NewFromInt(-50)), "budget consumption is refunded")
	suite.Equal(txn.TransactionDate, gotImpacts[0].ReferenceDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ToleratesRemovedAllocation() {
	ctx := context.Background()
	allocationID := uuid.NewString()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.checkingAccount.AccountID,
		AllocationID:    &allocationID,
		Amount:          decimal.NewFromInt(20),
		Currency:        "USD",
		TransactionType: domain.Debit,
		TransactionDate: time.Now().UTC(),
		IsPosted:        true,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, txn.TransactionID).
		Return(&txn, nil).Once()
	suite.mockAllocationRepo.On("FindAllocationByID", ctx, suite.userID, allocationID).
		Return(nil, apperrors.ErrNotFound).Once()

	var gotImpacts []domain.BudgetImpact
	suite.mockTxnRepo.On("DeleteLedgerEntry", ctx, suite.userID, txn.TransactionID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotImpacts, _ = args.Get(4).([]domain.BudgetImpact)
		}).
		Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err, "deleting survives an allocation removed after posting")
	suite.Empty(gotImpacts)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_UnpostedHasNoEffects() {
	ctx := context.Background()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          suite.userID,
		AccountID:       suite.checkingAccount.AccountID,
		Amount:          decimal.NewFromInt(15),
		Currency:        "USD",
		TransactionType: domain.Debit,
		TransactionDate: time.Now().UTC(),
		IsPosted:        false,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, txn.TransactionID).
		Return(&txn, nil).Once()

	var gotChanges map[string]decimal.Decimal
	suite.mockTxnRepo.On("DeleteLedgerEntry", ctx, suite.userID, txn.TransactionID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotChanges, _ = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Empty(gotChanges)
	suite.mockAllocationRepo.AssertNotCalled(suite.T(), "ListBudgetAllocations", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetPeriodSummary() {
	ctx := context.Background()
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	otherAccount := suite.euroAccount.AccountID

	txns := []domain.Transaction{
		{
			TransactionType: domain.Credit,
			Amount:          decimal.NewFromInt(2000),
			IsPosted:        true,
		},
		{
			TransactionType: domain.Debit,
			Amount:          decimal.NewFromInt(120),
			CategoryID:      &suite.groceryCategory.CategoryID,
			IsPosted:        true,
		},
		{
			TransactionType: domain.Debit,
			Amount:          decimal.NewFromInt(60),
			IsPosted:        true,
		},
		// Transfers and unposted rows stay out of the summary.
		{
			TransactionType:       domain.Transfer,
			Amount:                decimal.NewFromInt(500),
			TransferFromAccountID: &suite.checkingAccount.AccountID,
			TransferToAccountID:   &otherAccount,
			IsPosted:              true,
		},
		{
			TransactionType: domain.Debit,
			Amount:          decimal.NewFromInt(999),
			IsPosted:        false,
		},
	}

	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, mock.AnythingOfType("repositories.TransactionListFilter")).
		Return(txns, len(txns), nil).Once()
	suite.mockCategoryRepo.On("ListCategories", ctx, suite.userID, portsrepo.CategoryListFilter{}).
		Return([]domain.Category{suite.groceryCategory}, 1, nil).Once()

	summary, err := suite.service.GetPeriodSummary(ctx, suite.userID, start, end, nil)

	suite.Require().NoError(err)
	suite.Equal(3, summary.TransactionCount)
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(2000)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(180)))
	suite.True(summary.NetFlow.Equal(decimal.NewFromInt(1820)))

	groceries := summary.CategoryBreakdown["Groceries"]
	suite.True(groceries.Expenses.Equal(decimal.NewFromInt(120)))
	uncategorized := summary.CategoryBreakdown["uncategorized"]
	suite.True(uncategorized.Income.Equal(decimal.NewFromInt(2000)))
	suite.True(uncategorized.Expenses.Equal(decimal.NewFromInt(60)))
}

func (suite *TransactionServiceTestSuite) TestAttachReceipt() {
	ctx := context.Background()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        suite.userID,
		AccountID:     suite.checkingAccount.AccountID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.userID, txn.TransactionID).
		Return(&txn, nil).Once()
	suite.mockTxnRepo.On("SetReceiptURL", ctx, suite.userID, txn.TransactionID, "/uploads/receipt.png", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.AttachReceipt(ctx, suite.userID, txn.TransactionID, "/uploads/receipt.png")

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
