package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ApplicationRepo:  newPgxApplicationRepository(dbPool),
		WorkflowRepo:     newPgxWorkflowRepository(dbPool),
		WorkflowLogRepo:  newPgxWorkflowLogRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		TransferRepo:     newPgxTransferRepository(dbPool),
	}
}
