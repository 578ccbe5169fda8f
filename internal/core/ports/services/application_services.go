package services

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// ApplicationReaderSvc defines read operations for loan applications.
type ApplicationReaderSvc interface {
	// GetApplicationByID retrieves a specific application.
	GetApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error)

	// ListApplications retrieves a paginated list of applications.
	ListApplications(ctx context.Context, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error)
}

// ApplicationWriterSvc defines write operations for loan applications.
type ApplicationWriterSvc interface {
	// SubmitApplication creates a new application in its initial pending
	// status and bootstraps its workflow record.
	SubmitApplication(ctx context.Context, req dto.CreateApplicationRequest, creatorUserID string) (*domain.LoanApplication, error)
}

// ApplicationSvcFacade combines all application service interfaces.
type ApplicationSvcFacade interface {
	ApplicationReaderSvc
	ApplicationWriterSvc
}
