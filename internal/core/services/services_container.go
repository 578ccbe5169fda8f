package services

import (
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first: the workflow engine resolves approvers through it.
	container.User = NewUserService(repos.UserRepo)

	container.Client = NewClientService(repos.ClientRepo)
	container.Application = NewApplicationService(repos.ApplicationRepo, repos.WorkflowRepo, repos.ClientRepo)
	container.Workflow = NewWorkflowService(repos.WorkflowRepo, repos.WorkflowLogRepo, repos.ApplicationRepo, container.User)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.ClientRepo, repos.ApplicationRepo, repos.NotificationRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)

	container.TokenService = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
