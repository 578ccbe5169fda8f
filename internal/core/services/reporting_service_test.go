package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetStageActivity(ctx context.Context, role domain.Stage, weekStart, weekEnd time.Time) ([]domain.StageActivityRow, error) {
	args := m.Called(ctx, role, weekStart, weekEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StageActivityRow), args.Error(1)
}

func (m *MockReportingRepository) UpsertWeeklyReport(ctx context.Context, report domain.WeeklyReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportingRepository) ListWeeklyReports(ctx context.Context, weekStart time.Time) ([]domain.WeeklyReport, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyReport), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGenerateWeeklyReports_AggregatesPerRole() {
	ctx := context.Background()
	// Wednesday 2025-06-18; the containing week starts Monday 2025-06-16.
	asOf := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)
	wantStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)

	approved := true
	rejected := false
	managerRows := []domain.StageActivityRow{
		{ApplicationID: "a1", LoanAmount: decimal.NewFromInt(100000), Approved: &approved},
		{ApplicationID: "a2", LoanAmount: decimal.NewFromInt(200000), Approved: &approved},
		{ApplicationID: "a3", LoanAmount: decimal.NewFromInt(50000), Approved: &rejected},
		{ApplicationID: "a4", LoanAmount: decimal.NewFromInt(75000), Approved: nil},
	}

	for _, role := range domain.ReportingStages() {
		rows := []domain.StageActivityRow{}
		if role == domain.StageManager {
			rows = managerRows
		}
		suite.mockRepo.On("GetStageActivity", ctx, role, wantStart, wantEnd).Return(rows, nil).Once()
		suite.mockRepo.On("UpsertWeeklyReport", ctx, mock.MatchedBy(func(r domain.WeeklyReport) bool {
			return r.Role == role && r.WeekStart.Equal(wantStart)
		})).Return(nil).Once()
	}

	reports, err := suite.service.GenerateWeeklyReports(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(reports, len(domain.ReportingStages()))

	manager := reports[0]
	suite.Equal(domain.StageManager, manager.Role)
	suite.Equal(wantStart, manager.WeekStart)
	suite.Equal(time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC), manager.WeekEnd)
	suite.Equal(4, manager.TotalCount)
	suite.Equal(2, manager.ApprovedCount)
	suite.Equal(1, manager.RejectedCount)
	suite.Equal(1, manager.PendingCount)
	suite.True(manager.TotalAmount.Equal(decimal.NewFromInt(425000)))
	suite.True(manager.ApprovedAmount.Equal(decimal.NewFromInt(300000)))
	suite.Equal(50, manager.ApprovalRate)

	for _, r := range reports[1:] {
		suite.Equal(0, r.TotalCount)
		suite.Equal(0, r.ApprovalRate)
		suite.True(r.TotalAmount.IsZero())
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGenerateWeeklyReports_RateRoundsToNearest() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // a Monday

	approved := true
	rejected := false
	rows := []domain.StageActivityRow{
		{ApplicationID: "a1", LoanAmount: decimal.NewFromInt(1), Approved: &approved},
		{ApplicationID: "a2", LoanAmount: decimal.NewFromInt(1), Approved: &rejected},
		{ApplicationID: "a3", LoanAmount: decimal.NewFromInt(1), Approved: &rejected},
	}

	for _, role := range domain.ReportingStages() {
		activity := []domain.StageActivityRow{}
		if role == domain.StageCEO {
			activity = rows
		}
		suite.mockRepo.On("GetStageActivity", ctx, role, mock.Anything, mock.Anything).Return(activity, nil).Once()
		suite.mockRepo.On("UpsertWeeklyReport", ctx, mock.AnythingOfType("domain.WeeklyReport")).Return(nil).Once()
	}

	reports, err := suite.service.GenerateWeeklyReports(ctx, asOf)

	suite.Require().NoError(err)
	var ceo domain.WeeklyReport
	for _, r := range reports {
		if r.Role == domain.StageCEO {
			ceo = r
		}
	}
	// 1 of 3 approved: 33.33% rounds to 33.
	suite.Equal(33, ceo.ApprovalRate)
}

func (suite *ReportingServiceTestSuite) TestGenerateWeeklyReports_SundayBelongsToSameWeek() {
	ctx := context.Background()
	// Sunday 2025-06-22 23:59 still falls in the week starting Monday 2025-06-16.
	asOf := time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC)
	wantStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	for _, role := range domain.ReportingStages() {
		suite.mockRepo.On("GetStageActivity", ctx, role, wantStart, mock.Anything).Return([]domain.StageActivityRow{}, nil).Once()
		suite.mockRepo.On("UpsertWeeklyReport", ctx, mock.AnythingOfType("domain.WeeklyReport")).Return(nil).Once()
	}

	_, err := suite.service.GenerateWeeklyReports(ctx, asOf)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGenerateWeeklyReports_ReadErrorAborts() {
	ctx := context.Background()
	asOf := time.Now()

	suite.mockRepo.On("GetStageActivity", ctx, domain.StageManager, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := suite.service.GenerateWeeklyReports(ctx, asOf)

	suite.Require().Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertWeeklyReport", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetWeeklyReports_UsesWeekStartOfGivenDate() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC) // Friday
	wantStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	stored := []domain.WeeklyReport{{ReportID: "r1", Role: domain.StageManager, WeekStart: wantStart}}
	suite.mockRepo.On("ListWeeklyReports", ctx, wantStart).Return(stored, nil).Once()

	reports, err := suite.service.GetWeeklyReports(ctx, asOf)

	suite.Require().NoError(err)
	suite.Len(reports, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetWeeklyReports_EmptyWeek() {
	ctx := context.Background()

	suite.mockRepo.On("ListWeeklyReports", ctx, mock.Anything).Return(nil, nil).Once()

	reports, err := suite.service.GetWeeklyReports(ctx, time.Now())

	suite.Require().NoError(err)
	suite.NotNil(reports)
	suite.Empty(reports)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
