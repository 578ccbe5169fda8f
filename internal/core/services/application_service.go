package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

const defaultApplicationPageSize = 20

// applicationService implements ApplicationSvcFacade.
type applicationService struct {
	BaseService
	applicationRepo portsrepo.ApplicationRepositoryFacade
	workflowRepo    portsrepo.WorkflowRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
}

// NewApplicationService creates a new application service instance.
func NewApplicationService(
	applicationRepo portsrepo.ApplicationRepositoryFacade,
	workflowRepo portsrepo.WorkflowRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
) portssvc.ApplicationSvcFacade {
	return &applicationService{
		applicationRepo: applicationRepo,
		workflowRepo:    workflowRepo,
		clientRepo:      clientRepo,
	}
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// SubmitApplication creates the application in its initial pending status and
// eagerly bootstraps the workflow record so the first read never races the
// first decision.
func (s *applicationService) SubmitApplication(ctx context.Context, req dto.CreateApplicationRequest, creatorUserID string) (*domain.LoanApplication, error) {
	if !req.LoanAmount.IsPositive() {
		return nil, apperrors.NewBadRequestError("loanAmount must be positive")
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("client %s not found", req.ClientID))
		}
		s.LogError(ctx, err, "Failed to resolve client for application", slog.String("client_id", req.ClientID))
		return nil, err
	}

	now := time.Now()
	app := domain.LoanApplication{
		ApplicationID:    uuid.NewString(),
		ClientID:         client.ClientID,
		ClientName:       client.FullName,
		LoanAmount:       req.LoanAmount,
		LoanType:         req.LoanType,
		Purpose:          req.Purpose,
		MonthlyIncome:    req.MonthlyIncome,
		EmploymentStatus: req.EmploymentStatus,
		ContactPhone:     req.ContactPhone,
		NationalID:       req.NationalID,
		Status:           domain.PendingStatusFor(domain.FirstStage()),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.applicationRepo.SaveApplication(ctx, app); err != nil {
		s.LogError(ctx, err, "Failed to save application", slog.String("application_id", app.ApplicationID))
		return nil, err
	}

	workflow := domain.NewWorkflowState(uuid.NewString(), app.ApplicationID, app.AuditFields)
	if _, err := s.workflowRepo.EnsureWorkflow(ctx, workflow); err != nil {
		// The read path bootstraps on demand, so submission still succeeds.
		s.LogWarn(ctx, "Failed to eagerly bootstrap workflow for new application",
			slog.String("error", err.Error()),
			slog.String("application_id", app.ApplicationID))
	}

	s.LogInfo(ctx, "Loan application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("client_id", app.ClientID),
		slog.String("amount", app.LoanAmount.String()))
	return &app, nil
}

// GetApplicationByID retrieves a specific application.
func (s *applicationService) GetApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	app, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find application by ID", slog.String("application_id", applicationID))
		}
		return nil, err
	}
	return app, nil
}

// ListApplications retrieves a token-paginated page of applications.
func (s *applicationService) ListApplications(ctx context.Context, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultApplicationPageSize
	}

	var status *domain.ApplicationStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.ApplicationStatus(*params.Status)
		status = &st
	}

	apps, nextToken, err := s.applicationRepo.ListApplications(ctx, limit, params.NextToken, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications", slog.Int("limit", limit))
		return nil, err
	}

	return &dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(apps),
		NextToken:    nextToken,
	}, nil
}
