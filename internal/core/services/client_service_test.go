package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portssvc "github.com/brightbooks/bright_books_app/internal/core/ports/services"
	"github.com/brightbooks/bright_books_app/internal/core/services"
	"github.com/brightbooks/bright_books_app/internal/dto"
)

type ClientServiceTestSuite struct {
	suite.Suite
	mockClientRepo  *MockClientRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ClientSvcFacade

	userID string
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewClientService(suite.mockClientRepo, suite.mockAccountRepo)
	suite.userID = uuid.NewString()
}

func (suite *ClientServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		CompanyName: "Acme Widgets",
		ContactName: "J. Doe",
		Email:       "j.doe@acme.test",
		Industry:    "Retail",
		Plan:        domain.PlanFullService,
		MonthlyFee:  decimal.NewFromInt(299),
	}

	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(nil).Once()

	client, err := suite.service.CreateClient(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.NotEmpty(client.ClientID)
	suite.Equal("Acme Widgets", client.CompanyName)
	suite.Equal("retail", client.Industry) // normalized
	suite.Equal(domain.ClientActive, client.Status)
	suite.Zero(client.LastEntryNumber)
	suite.Equal(suite.userID, client.CreatedBy)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestCreateClient_InvalidPlan() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		CompanyName: "Acme Widgets",
		Industry:    "retail",
		Plan:        domain.ClientPlan("GOLD"),
	}

	client, err := suite.service.CreateClient(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "SaveClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestCreateClient_SeedsChartWhenRequested() {
	ctx := context.Background()
	req := dto.CreateClientRequest{
		CompanyName: "Acme Widgets",
		Industry:    "retail",
		Plan:        domain.PlanBasic,
		SeedChart:   true,
	}

	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).Return(nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Client{Industry: "retail"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	client, err := suite.service.CreateClient(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	// Every template account is created as a protected system account.
	template := services.TemplateForIndustry("retail")
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", len(template))
}

func (suite *ClientServiceTestSuite) TestSeedIndustryTemplate_SkipsExistingNumbers() {
	ctx := context.Background()
	clientID := uuid.NewString()
	template := services.TemplateForIndustry("general")
	takenNumber := template[0].AccountNumber

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID, Industry: "general"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, clientID, takenNumber).
		Return(&domain.Account{AccountNumber: takenNumber}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, clientID, mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	created, err := suite.service.SeedIndustryTemplate(ctx, clientID, "general", suite.userID)

	suite.Require().NoError(err)
	suite.Len(created, len(template)-1)
	for _, account := range created {
		suite.True(account.IsSystemAccount)
		suite.True(account.IsActive)
		suite.NotEqual(takenNumber, account.AccountNumber)
	}
}

func (suite *ClientServiceTestSuite) TestSeedIndustryTemplate_UnknownIndustryFallsBackToGeneral() {
	ctx := context.Background()
	clientID := uuid.NewString()

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, clientID, mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	created, err := suite.service.SeedIndustryTemplate(ctx, clientID, "beekeeping", suite.userID)

	suite.Require().NoError(err)
	suite.Len(created, len(services.TemplateForIndustry("general")))
}

func (suite *ClientServiceTestSuite) TestUpdateClient_NegativeFeeRejected() {
	ctx := context.Background()
	clientID := uuid.NewString()
	fee := decimal.NewFromInt(-10)
	req := dto.UpdateClientRequest{MonthlyFee: &fee}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID}, nil).Once()

	client, err := suite.service.UpdateClient(ctx, clientID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
