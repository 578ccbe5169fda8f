package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/core/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// MockWorkflowRepository is a mock type for the WorkflowRepositoryFacade interface
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) FindWorkflowByApplicationID(ctx context.Context, applicationID string) (*domain.WorkflowState, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowState), args.Error(1)
}

func (m *MockWorkflowRepository) EnsureWorkflow(ctx context.Context, workflow domain.WorkflowState) (*domain.WorkflowState, error) {
	args := m.Called(ctx, workflow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkflowState), args.Error(1)
}

func (m *MockWorkflowRepository) ApplyTransition(ctx context.Context, update portsrepo.TransitionUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockWorkflowRepository) ApplyDownsize(ctx context.Context, update portsrepo.DownsizeUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

// MockWorkflowLogRepository is a mock type for the WorkflowLogRepositoryFacade interface
type MockWorkflowLogRepository struct {
	mock.Mock
}

func (m *MockWorkflowLogRepository) AppendWorkflowLog(ctx context.Context, entry domain.WorkflowLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkflowLogRepository) ListWorkflowLogs(ctx context.Context, applicationID string) ([]domain.WorkflowLogEntry, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkflowLogEntry), args.Error(1)
}

// MockApplicationRepository is a mock type for the ApplicationRepositoryFacade interface
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, application domain.LoanApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListApplications(ctx context.Context, limit int, nextToken *string, status *domain.ApplicationStatus) ([]domain.LoanApplication, *string, error) {
	args := m.Called(ctx, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LoanApplication), token, args.Error(2)
}

// MockUserReader is a mock type for the UserReaderSvc interface
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite Setup ---

type WorkflowServiceTestSuite struct {
	suite.Suite
	mockWorkflowRepo *MockWorkflowRepository
	mockLogRepo      *MockWorkflowLogRepository
	mockAppRepo      *MockApplicationRepository
	mockUserReader   *MockUserReader
	service          portssvc.WorkflowSvcFacade
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.mockWorkflowRepo = new(MockWorkflowRepository)
	suite.mockLogRepo = new(MockWorkflowLogRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.service = services.NewWorkflowService(suite.mockWorkflowRepo, suite.mockLogRepo, suite.mockAppRepo, suite.mockUserReader)
}

// --- Helpers ---

func newTestApplication(status domain.ApplicationStatus) *domain.LoanApplication {
	now := time.Now()
	return &domain.LoanApplication{
		ApplicationID: uuid.NewString(),
		ClientID:      uuid.NewString(),
		ClientName:    "Jane Wanjiku",
		LoanAmount:    decimal.NewFromInt(500000),
		LoanType:      "business",
		Purpose:       "Stock purchase",
		MonthlyIncome: decimal.NewFromInt(80000),
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uuid.NewString(),
			LastUpdatedAt: now,
			LastUpdatedBy: uuid.NewString(),
		},
	}
}

func newTestWorkflow(applicationID string, current domain.Stage) *domain.WorkflowState {
	w := domain.NewWorkflowState(uuid.NewString(), applicationID, domain.AuditFields{})
	w.CurrentStage = current
	approved := true
	for _, st := range domain.StageOrder() {
		if st == current {
			break
		}
		now := time.Now()
		name := "Earlier Approver"
		w.Decisions[st] = domain.StageDecision{Approved: &approved, ApproverName: &name, DecidedAt: &now}
	}
	return &w
}

func newTestApprover(role domain.Role) *domain.User {
	return &domain.User{
		UserID: uuid.NewString(),
		Name:   "Test Approver",
		Email:  "approver@example.com",
		Role:   role,
	}
}

// --- Test Cases ---

func (suite *WorkflowServiceTestSuite) TestGetWorkflowData_ExistingWorkflow() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()

	gotApp, gotWorkflow, err := suite.service.GetWorkflowData(ctx, app.ApplicationID)

	suite.Require().NoError(err)
	suite.Equal(app.ApplicationID, gotApp.ApplicationID)
	suite.Equal(domain.StageManager, gotWorkflow.CurrentStage)
	suite.mockAppRepo.AssertExpectations(suite.T())
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowData_BootstrapsMissingWorkflow() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingFieldOfficer)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWorkflowRepo.On("EnsureWorkflow", ctx, mock.MatchedBy(func(w domain.WorkflowState) bool {
		return w.LoanApplicationID == app.ApplicationID &&
			w.CurrentStage == domain.FirstStage() &&
			w.CreatedBy == app.CreatedBy &&
			!w.DecisionFor(domain.StageFieldOfficer).Decided()
	})).Return(&domain.WorkflowState{
		WorkflowID:        uuid.NewString(),
		LoanApplicationID: app.ApplicationID,
		CurrentStage:      domain.FirstStage(),
	}, nil).Once()

	_, gotWorkflow, err := suite.service.GetWorkflowData(ctx, app.ApplicationID)

	suite.Require().NoError(err)
	suite.Equal(domain.StageFieldOfficer, gotWorkflow.CurrentStage)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestGetWorkflowData_ApplicationNotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.GetWorkflowData(ctx, missingID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "FindWorkflowByApplicationID", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_ApproveAdvancesToNextStage() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approver := newTestApprover(domain.RoleManager)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.MatchedBy(func(u portsrepo.TransitionUpdate) bool {
		return u.Stage == domain.StageManager &&
			u.NextStage != nil && *u.NextStage == domain.StageDirector &&
			u.NewStatus == domain.StatusPendingDirector &&
			u.Decision.Approved != nil && *u.Decision.Approved &&
			u.Notification.UserID == app.CreatedBy
	})).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.MatchedBy(func(e domain.WorkflowLogEntry) bool {
		return e.Stage == domain.StageManager && e.Action == "Approved by Manager" && e.PerformedBy == approver.UserID
	})).Return(nil).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.False(resp.IsFinal)
	suite.Equal(string(domain.StatusPendingDirector), resp.Status)
	suite.Require().NotNil(resp.NextStage)
	suite.Equal(string(domain.StageDirector), *resp.NextStage)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
	suite.mockLogRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_FinalApprovalByCEO() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingCEO)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageCEO)
	approver := newTestApprover(domain.RoleCEO)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.MatchedBy(func(u portsrepo.TransitionUpdate) bool {
		return u.Stage == domain.StageCEO &&
			u.NextStage == nil &&
			u.NewStatus == domain.StatusApproved
	})).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.AnythingOfType("domain.WorkflowLogEntry")).Return(nil).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.IsFinal)
	suite.Equal(string(domain.StatusApproved), resp.Status)
	suite.Nil(resp.NextStage)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_RejectFreezesWorkflow() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingDirector)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageDirector)
	approver := newTestApprover(domain.RoleDirector)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.MatchedBy(func(u portsrepo.TransitionUpdate) bool {
		return u.Stage == domain.StageDirector &&
			u.NextStage == nil &&
			u.NewStatus == domain.StatusRejected &&
			u.RejectionReason != nil && *u.RejectionReason == "Insufficient collateral" &&
			u.Decision.Approved != nil && !*u.Decision.Approved
	})).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.MatchedBy(func(e domain.WorkflowLogEntry) bool {
		return e.Action == "Rejected by Director"
	})).Return(nil).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionReject,
		LoanID: app.ApplicationID,
		Notes:  "Insufficient collateral",
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.IsFinal)
	suite.Equal(string(domain.StatusRejected), resp.Status)
	suite.mockWorkflowRepo.AssertExpectations(suite.T())
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_CEORejectionIsFinal() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingCEO)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageCEO)
	approver := newTestApprover(domain.RoleCEO)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.MatchedBy(func(u portsrepo.TransitionUpdate) bool {
		return u.NewStatus == domain.StatusRejectedFinal && u.NextStage == nil
	})).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.AnythingOfType("domain.WorkflowLogEntry")).Return(nil).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionReject,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.IsFinal)
	suite.Equal(string(domain.StatusRejectedFinal), resp.Status)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_WrongRoleIsForbidden() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approver := newTestApprover(domain.RoleFieldOfficer)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_AdminHasNoStage() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approver := newTestApprover(domain.RoleAdmin)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_AlreadyDecidedStageConflicts() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approved := true
	workflow.Decisions[domain.StageManager] = domain.StageDecision{Approved: &approved}
	approver := newTestApprover(domain.RoleManager)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_ConcurrentDecisionConflicts() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approver := newTestApprover(domain.RoleManager)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.AnythingOfType("repositories.TransitionUpdate")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLogRepo.AssertNotCalled(suite.T(), "AppendWorkflowLog", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_TerminalApplicationConflicts() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusApproved)
	approver := newTestApprover(domain.RoleCEO)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "FindWorkflowByApplicationID", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_UnknownApplication() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: missingID,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_UnknownApproverIsUnauthorized() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approverID := uuid.NewString()

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approverID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_DownsizeAdjustsAmountOnly() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingChairperson)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageChairperson)
	approver := newTestApprover(domain.RoleChairperson)
	newAmount := decimal.NewFromInt(300000)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyDownsize", ctx, mock.MatchedBy(func(u portsrepo.DownsizeUpdate) bool {
		return u.LoanApplicationID == app.ApplicationID &&
			u.NewAmount.Equal(newAmount) &&
			u.Reason == "Repayment capacity supports a smaller facility" &&
			u.Notification.UserID == app.CreatedBy
	})).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.AnythingOfType("domain.WorkflowLogEntry")).Return(nil).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action:          domain.DecisionDownsize,
		LoanID:          app.ApplicationID,
		Notes:           "Repayment capacity supports a smaller facility",
		DownsizedAmount: &newAmount,
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.False(resp.IsFinal)
	suite.Equal(string(domain.StatusPendingChairperson), resp.Status)
	suite.Require().NotNil(resp.NextStage)
	suite.Equal(string(domain.StageChairperson), *resp.NextStage)
	suite.mockWorkflowRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_DownsizeRequiresPositiveAmount() {
	ctx := context.Background()
	zero := decimal.Zero

	_, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action:          domain.DecisionDownsize,
		LoanID:          uuid.NewString(),
		DownsizedAmount: &zero,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "FindApplicationByID", mock.Anything, mock.Anything)
}

func (suite *WorkflowServiceTestSuite) TestSubmitDecision_LogFailureDoesNotFailTransition() {
	ctx := context.Background()
	app := newTestApplication(domain.StatusPendingManager)
	workflow := newTestWorkflow(app.ApplicationID, domain.StageManager)
	approver := newTestApprover(domain.RoleManager)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockWorkflowRepo.On("FindWorkflowByApplicationID", ctx, app.ApplicationID).Return(workflow, nil).Once()
	suite.mockUserReader.On("GetUserByID", ctx, approver.UserID).Return(approver, nil).Once()
	suite.mockWorkflowRepo.On("ApplyTransition", ctx, mock.AnythingOfType("repositories.TransitionUpdate")).Return(nil).Once()
	suite.mockLogRepo.On("AppendWorkflowLog", ctx, mock.AnythingOfType("domain.WorkflowLogEntry")).Return(errors.New("log table unavailable")).Once()

	resp, err := suite.service.SubmitDecision(ctx, dto.TransitionRequest{
		Action: domain.DecisionApprove,
		LoanID: app.ApplicationID,
	}, approver.UserID)

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.mockLogRepo.AssertExpectations(suite.T())
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
