package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	"github.com/usawacapital/loan_origination_app/internal/models"
	"github.com/usawacapital/loan_origination_app/internal/utils/mapping"
)

// PgxWorkflowLogRepository persists the append-only workflow audit trail.
type PgxWorkflowLogRepository struct {
	BaseRepository
}

func newPgxWorkflowLogRepository(pool *pgxpool.Pool) portsrepo.WorkflowLogRepositoryFacade {
	return &PgxWorkflowLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkflowLogRepository implements portsrepo.WorkflowLogRepositoryFacade
var _ portsrepo.WorkflowLogRepositoryFacade = (*PgxWorkflowLogRepository)(nil)

func (r *PgxWorkflowLogRepository) AppendWorkflowLog(ctx context.Context, entry domain.WorkflowLogEntry) error {
	m := mapping.ToModelWorkflowLogEntry(entry)
	query := `
		INSERT INTO workflow_logs (log_id, loan_application_id, stage, action, performed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.LogID, m.LoanApplicationID, m.Stage, m.Action, m.PerformedBy, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append workflow log for application %s: %w", m.LoanApplicationID, err)
	}
	return nil
}

func (r *PgxWorkflowLogRepository) ListWorkflowLogs(ctx context.Context, applicationID string) ([]domain.WorkflowLogEntry, error) {
	query := `
		SELECT log_id, loan_application_id, stage, action, performed_by, notes, created_at
		FROM workflow_logs
		WHERE loan_application_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow logs for application %s: %w", applicationID, err)
	}
	modelLogs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WorkflowLogEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan workflow logs: %w", err)
	}
	return mapping.ToDomainWorkflowLogSlice(modelLogs), nil
}
