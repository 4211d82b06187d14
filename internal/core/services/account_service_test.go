package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/core/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade

	clientID string
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, suite.clientID, "1000").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.clientID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.clientID, account.ClientID)
	suite.Equal("1000", account.AccountNumber)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal(domain.Debit, account.NormalBalance) // derived from type
	suite.True(account.IsActive)
	suite.False(account.IsSystemAccount)
	suite.Zero(account.Balance)
	suite.Equal(int64(1), account.Version)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ExplicitNormalBalanceMustMatchType() {
	ctx := context.Background()
	wrong := "CREDIT"
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		NormalBalance: &wrong, // assets are debit-normal
	}

	account, err := suite.service.CreateAccount(ctx, suite.clientID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
	}
	existing := &domain.Account{
		AccountID:     uuid.NewString(),
		ClientID:      suite.clientID,
		AccountNumber: "1000",
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, suite.clientID, "1000").
		Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.clientID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "1100",
		Name:            "Accounts Receivable",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}
	parent := &domain.Account{
		AccountID:   parentID,
		ClientID:    suite.clientID,
		AccountType: domain.Liability,
	}

	suite.mockRepo.On("FindAccountByNumber", ctx, suite.clientID, "1100").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(parent, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.clientID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentChainCycle() {
	ctx := context.Background()
	idA := uuid.NewString()
	idB := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "1200",
		Name:            "Inventory",
		AccountType:     domain.Asset,
		ParentAccountID: &idA,
	}
	// A and B point at each other.
	accountA := &domain.Account{AccountID: idA, ClientID: suite.clientID, AccountType: domain.Asset, ParentAccountID: idB}
	accountB := &domain.Account{AccountID: idB, ClientID: suite.clientID, AccountType: domain.Asset, ParentAccountID: idA}

	suite.mockRepo.On("FindAccountByNumber", ctx, suite.clientID, "1200").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, idA).Return(accountA, nil)
	suite.mockRepo.On("FindAccountByID", ctx, idB).Return(accountB, nil)

	account, err := suite.service.CreateAccount(ctx, suite.clientID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrAccountCycle)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree_NestsAndSortsByNumber() {
	ctx := context.Background()
	parentID := uuid.NewString()
	childID := uuid.NewString()
	otherID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: otherID, ClientID: suite.clientID, AccountNumber: "2000", Name: "Accounts Payable"},
		{AccountID: parentID, ClientID: suite.clientID, AccountNumber: "1000", Name: "Current Assets"},
		{AccountID: childID, ClientID: suite.clientID, AccountNumber: "1100", Name: "Cash", ParentAccountID: parentID},
	}

	suite.mockRepo.On("ListAccountsByClient", ctx, suite.clientID).Return(accounts, nil).Once()

	roots, err := suite.service.GetAccountTree(ctx, suite.clientID)

	suite.Require().NoError(err)
	suite.Require().Len(roots, 2)
	suite.Equal("1000", roots[0].Account.AccountNumber)
	suite.Equal("2000", roots[1].Account.AccountNumber)
	suite.Require().Len(roots[0].Children, 1)
	suite.Equal(childID, roots[0].Children[0].Account.AccountID)
	suite.Empty(roots[1].Children)
}

func (suite *AccountServiceTestSuite) TestGetAccountTree_CycleDetected() {
	ctx := context.Background()
	idA := uuid.NewString()
	idB := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: idA, ClientID: suite.clientID, AccountNumber: "1000", ParentAccountID: idB},
		{AccountID: idB, ClientID: suite.clientID, AccountNumber: "1100", ParentAccountID: idA},
	}

	suite.mockRepo.On("ListAccountsByClient", ctx, suite.clientID).Return(accounts, nil).Once()

	roots, err := suite.service.GetAccountTree(ctx, suite.clientID)

	suite.Require().Error(err)
	suite.Nil(roots)
	suite.ErrorIs(err, services.ErrAccountCycle)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ConcurrencyConflict() {
	ctx := context.Background()
	accountID := uuid.NewString()
	name := "Renamed"
	account := &domain.Account{
		AccountID: accountID,
		ClientID:  suite.clientID,
		Name:      "Cash",
		Version:   3,
	}
	req := dto.UpdateAccountRequest{Name: &name, Version: 2} // stale

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrConcurrencyConflict).Once()

	result, err := suite.service.UpdateAccount(ctx, suite.clientID, accountID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConcurrencyConflict)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:     accountID,
		ClientID:      suite.clientID,
		AccountNumber: "5000",
		IsActive:      true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("ListAccountsByClient", ctx, suite.clientID).
		Return([]domain.Account{*account}, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.clientID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemAccountProtected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:       accountID,
		ClientID:        suite.clientID,
		AccountNumber:   "3900",
		IsActive:        true,
		IsSystemAccount: true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.clientID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID: accountID,
		ClientID:  suite.clientID,
		IsActive:  false,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.clientID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_ActiveChildrenProtected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:     accountID,
		ClientID:      suite.clientID,
		AccountNumber: "1000",
		IsActive:      true,
	}
	child := domain.Account{
		AccountID:       uuid.NewString(),
		ClientID:        suite.clientID,
		AccountNumber:   "1100",
		ParentAccountID: accountID,
		IsActive:        true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockRepo.On("ListAccountsByClient", ctx, suite.clientID).
		Return([]domain.Account{*account, child}, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.clientID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrProtectedAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherClientHiddenAsNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID: accountID,
		ClientID:  uuid.NewString(), // someone else's
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	result, err := suite.service.GetAccountByID(ctx, suite.clientID, accountID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
