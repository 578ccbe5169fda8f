package repositories

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// ApplicationReader defines read operations for loan applications.
type ApplicationReader interface {
	// FindApplicationByID retrieves a specific application by its identifier.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error)

	// ListApplications retrieves a paginated list of applications using token
	// pagination, optionally filtered by status. It returns the applications,
	// a token for the next page, and an error.
	ListApplications(ctx context.Context, limit int, nextToken *string, status *domain.ApplicationStatus) ([]domain.LoanApplication, *string, error)
}

// ApplicationWriter defines write operations for loan applications.
type ApplicationWriter interface {
	// SaveApplication persists a newly submitted application.
	SaveApplication(ctx context.Context, application domain.LoanApplication) error
}

// ApplicationRepositoryFacade combines application repository interfaces.
// Status mutations are deliberately absent here: they only happen inside the
// workflow transaction (see WorkflowWriter.ApplyTransition).
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}
