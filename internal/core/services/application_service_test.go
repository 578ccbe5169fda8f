package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/core/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Client), token, args.Error(2)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockAppRepo      *MockApplicationRepository
	mockWorkflowRepo *MockWorkflowRepository
	mockClientRepo   *MockClientRepository
	service          portssvc.ApplicationSvcFacade
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockWorkflowRepo = new(MockWorkflowRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewApplicationService(suite.mockAppRepo, suite.mockWorkflowRepo, suite.mockClientRepo)
}

func newTestClient() *domain.Client {
	return &domain.Client{
		ClientID:   uuid.NewString(),
		FullName:   "Peter Otieno",
		Email:      "peter@example.com",
		NationalID: "12345678",
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	client := newTestClient()
	req := dto.CreateApplicationRequest{
		ClientID:      client.ClientID,
		LoanAmount:    decimal.NewFromInt(250000),
		LoanType:      "business",
		Purpose:       "Working capital",
		MonthlyIncome: decimal.NewFromInt(60000),
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockAppRepo.On("SaveApplication", ctx, mock.MatchedBy(func(a domain.LoanApplication) bool {
		return a.ClientID == client.ClientID &&
			a.ClientName == client.FullName &&
			a.Status == domain.StatusPendingFieldOfficer &&
			a.CreatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockWorkflowRepo.On("EnsureWorkflow", ctx, mock.MatchedBy(func(w domain.WorkflowState) bool {
		return w.CurrentStage == domain.FirstStage()
	})).Return(&domain.WorkflowState{}, nil).Once()

	app, err := suite.service.SubmitApplication(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(app)
	suite.NotEmpty(app.ApplicationID)
	suite.Equal(domain.StatusPendingFieldOfficer, app.Status)
	suite.Equal(client.FullName, app.ClientName)
	suite.WithinDuration(time.Now(), app.CreatedAt, time.Second)
	suite.mockAppRepo.AssertExpectations(suite.T())
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateApplicationRequest{
		ClientID:   uuid.NewString(),
		LoanAmount: decimal.Zero,
		LoanType:   "personal",
		Purpose:    "School fees",
	}

	_, err := suite.service.SubmitApplication(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_UnknownClient() {
	ctx := context.Background()
	req := dto.CreateApplicationRequest{
		ClientID:   uuid.NewString(),
		LoanAmount: decimal.NewFromInt(100000),
		LoanType:   "personal",
		Purpose:    "Medical",
	}

	suite.mockClientRepo.On("FindClientByID", ctx, req.ClientID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitApplication(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "SaveApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_WorkflowBootstrapFailureIsNonFatal() {
	ctx := context.Background()
	client := newTestClient()
	req := dto.CreateApplicationRequest{
		ClientID:   client.ClientID,
		LoanAmount: decimal.NewFromInt(100000),
		LoanType:   "personal",
		Purpose:    "Medical",
	}

	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(client, nil).Once()
	suite.mockAppRepo.On("SaveApplication", ctx, mock.AnythingOfType("domain.LoanApplication")).Return(nil).Once()
	suite.mockWorkflowRepo.On("EnsureWorkflow", ctx, mock.AnythingOfType("domain.WorkflowState")).Return(nil, apperrors.ErrInternal).Once()

	app, err := suite.service.SubmitApplication(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(app)
}

func (suite *ApplicationServiceTestSuite) TestGetApplicationByID_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetApplicationByID(ctx, missingID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApplicationServiceTestSuite) TestListApplications_DefaultsLimitAndFiltersStatus() {
	ctx := context.Background()
	statusStr := string(domain.StatusPendingManager)
	apps := []domain.LoanApplication{*newTestApplication(domain.StatusPendingManager)}
	token := "next-page"

	suite.mockAppRepo.On("ListApplications", ctx, 20, (*string)(nil), mock.MatchedBy(func(s *domain.ApplicationStatus) bool {
		return s != nil && *s == domain.StatusPendingManager
	})).Return(apps, &token, nil).Once()

	resp, err := suite.service.ListApplications(ctx, dto.ListApplicationsParams{Status: &statusStr})

	suite.Require().NoError(err)
	suite.Len(resp.Applications, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
