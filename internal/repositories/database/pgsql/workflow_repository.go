package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	"github.com/usawacapital/loan_origination_app/internal/models"
	"github.com/usawacapital/loan_origination_app/internal/utils/mapping"
)

// PgxWorkflowRepository persists workflow state. A transition is one
// transaction: stage decision, pointer move, application status and the
// creator notification commit together or not at all.
type PgxWorkflowRepository struct {
	BaseRepository
}

func newPgxWorkflowRepository(pool *pgxpool.Pool) portsrepo.WorkflowRepositoryFacade {
	return &PgxWorkflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkflowRepository implements portsrepo.WorkflowRepositoryFacade
var _ portsrepo.WorkflowRepositoryFacade = (*PgxWorkflowRepository)(nil)

func (r *PgxWorkflowRepository) FindWorkflowByApplicationID(ctx context.Context, applicationID string) (*domain.WorkflowState, error) {
	return r.findWorkflow(ctx, r.Pool, applicationID, false)
}

// findWorkflow reads the workflow row plus its decision rows. With forUpdate
// set, the workflow row is locked for the duration of the transaction.
func (r *PgxWorkflowRepository) findWorkflow(ctx context.Context, q querier, applicationID string, forUpdate bool) (*domain.WorkflowState, error) {
	query := `
		SELECT workflow_id, loan_application_id, current_stage, created_at, created_by, last_updated_at, last_updated_by
		FROM workflows
		WHERE loan_application_id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}

	var modelWorkflow models.Workflow
	err := q.QueryRow(ctx, query, applicationID).Scan(
		&modelWorkflow.WorkflowID,
		&modelWorkflow.LoanApplicationID,
		&modelWorkflow.CurrentStage,
		&modelWorkflow.CreatedAt,
		&modelWorkflow.CreatedBy,
		&modelWorkflow.LastUpdatedAt,
		&modelWorkflow.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workflow for application %s: %w", applicationID, err)
	}

	decisionQuery := `
		SELECT workflow_id, stage, approved, notes, approver_name, decided_at
		FROM workflow_stage_decisions
		WHERE workflow_id = $1;
	`
	rows, err := q.Query(ctx, decisionQuery, modelWorkflow.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage decisions for workflow %s: %w", modelWorkflow.WorkflowID, err)
	}
	modelDecisions, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WorkflowStageDecision])
	if err != nil {
		return nil, fmt.Errorf("failed to scan stage decisions for workflow %s: %w", modelWorkflow.WorkflowID, err)
	}

	workflow := mapping.ToDomainWorkflowState(modelWorkflow, modelDecisions)
	return &workflow, nil
}

// EnsureWorkflow inserts the default workflow row if none exists and returns
// the current row either way. Losing the uniqueness race to a concurrent
// insert falls back to re-reading.
func (r *PgxWorkflowRepository) EnsureWorkflow(ctx context.Context, workflow domain.WorkflowState) (*domain.WorkflowState, error) {
	modelWorkflow := mapping.ToModelWorkflow(workflow)
	query := `
		INSERT INTO workflows (workflow_id, loan_application_id, current_stage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelWorkflow.WorkflowID,
		modelWorkflow.LoanApplicationID,
		modelWorkflow.CurrentStage,
		modelWorkflow.CreatedAt,
		modelWorkflow.CreatedBy,
		modelWorkflow.LastUpdatedAt,
		modelWorkflow.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return r.findWorkflow(ctx, r.Pool, workflow.LoanApplicationID, false)
		}
		return nil, fmt.Errorf("failed to insert workflow for application %s: %w", workflow.LoanApplicationID, err)
	}
	return &workflow, nil
}

// ApplyTransition applies one stage decision atomically. The workflow row is
// locked and re-checked under the lock: the targeted stage must still be the
// current stage and must carry no decision row yet, otherwise ErrConflict.
func (r *PgxWorkflowRepository) ApplyTransition(ctx context.Context, update portsrepo.TransitionUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	locked, err := r.findWorkflow(ctx, tx, update.LoanApplicationID, true)
	if err != nil {
		return err
	}
	if locked.CurrentStage != update.Stage || locked.DecisionFor(update.Stage).Decided() {
		return apperrors.ErrConflict
	}

	decisionQuery := `
		INSERT INTO workflow_stage_decisions (workflow_id, stage, approved, notes, approver_name, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, decisionQuery,
		update.WorkflowID,
		string(update.Stage),
		update.Decision.Approved,
		update.Decision.Notes,
		update.Decision.ApproverName,
		update.Decision.DecidedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// A concurrent decision slipped in before our lock.
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to insert stage decision: %w", err)
	}

	// The pointer only moves on approval of a non-final stage; a rejection
	// freezes it at the rejecting stage.
	newStage := string(update.Stage)
	if update.NextStage != nil {
		newStage = string(*update.NextStage)
	}
	workflowQuery := `
		UPDATE workflows
		SET current_stage = $1, last_updated_at = $2, last_updated_by = $3
		WHERE workflow_id = $4;
	`
	if _, err := tx.Exec(ctx, workflowQuery, newStage, update.UpdatedAt, update.UpdatedBy, update.WorkflowID); err != nil {
		return fmt.Errorf("failed to update workflow pointer: %w", err)
	}

	applicationQuery := `
		UPDATE loan_applications
		SET status = $1, rejection_reason = COALESCE($2, rejection_reason), last_updated_at = $3, last_updated_by = $4
		WHERE application_id = $5;
	`
	tag, err := tx.Exec(ctx, applicationQuery,
		string(update.NewStatus),
		update.RejectionReason,
		update.UpdatedAt,
		update.UpdatedBy,
		update.LoanApplicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertNotification(ctx, tx, update.Notification); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ApplyDownsize updates the loan amount and reason and inserts the
// notification in one transaction. The workflow row is untouched.
func (r *PgxWorkflowRepository) ApplyDownsize(ctx context.Context, update portsrepo.DownsizeUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE loan_applications
		SET loan_amount = $1, downsizing_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE application_id = $5;
	`
	tag, err := tx.Exec(ctx, query,
		update.NewAmount,
		update.Reason,
		update.UpdatedAt,
		update.UpdatedBy,
		update.LoanApplicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to downsize application %s: %w", update.LoanApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertNotification(ctx, tx, update.Notification); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// querier is the subset of pgx shared by the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// insertNotification appends a notification row using any querier, so the
// workflow transaction can carry the insert.
func insertNotification(ctx context.Context, q querier, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, message, related_type, related_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := q.Exec(ctx, query, n.NotificationID, n.UserID, n.Message, n.RelatedType, n.RelatedID, n.IsRead, n.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}
