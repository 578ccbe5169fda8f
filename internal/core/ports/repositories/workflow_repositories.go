package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// TransitionUpdate is the atomic unit a decision persists: the stage decision,
// the workflow pointer move, the application status change and the creator
// notification. The repository applies all of it in one database transaction
// or none of it.
type TransitionUpdate struct {
	WorkflowID        string
	LoanApplicationID string
	// Stage being decided. The store must re-check, under a row lock, that
	// this is still the current stage and that it carries no decision yet,
	// and fail with ErrConflict otherwise.
	Stage           domain.Stage
	Decision        domain.StageDecision
	NextStage       *domain.Stage // nil freezes the pointer (rejection or final approval)
	NewStatus       domain.ApplicationStatus
	RejectionReason *string
	Notification    domain.Notification
	UpdatedBy       string
	UpdatedAt       time.Time
}

// DownsizeUpdate adjusts the requested amount without touching the workflow.
type DownsizeUpdate struct {
	LoanApplicationID string
	NewAmount         decimal.Decimal
	Reason            string
	Notification      domain.Notification
	UpdatedBy         string
	UpdatedAt         time.Time
}

// WorkflowReader defines read operations for workflow state.
type WorkflowReader interface {
	// FindWorkflowByApplicationID retrieves the workflow row for an application.
	FindWorkflowByApplicationID(ctx context.Context, applicationID string) (*domain.WorkflowState, error)
}

// WorkflowWriter defines write operations for workflow state.
type WorkflowWriter interface {
	// EnsureWorkflow inserts the default workflow record if none exists and
	// returns the current row either way. A concurrent insert losing the
	// uniqueness race must fall back to re-reading, not error.
	EnsureWorkflow(ctx context.Context, workflow domain.WorkflowState) (*domain.WorkflowState, error)

	// ApplyTransition persists a stage decision, the application status change
	// and the notification as one transaction. Returns apperrors.ErrConflict
	// when the targeted stage is no longer the undecided current stage.
	ApplyTransition(ctx context.Context, update TransitionUpdate) error

	// ApplyDownsize updates the loan amount and reason and inserts the
	// notification in one transaction.
	ApplyDownsize(ctx context.Context, update DownsizeUpdate) error
}

// WorkflowRepositoryFacade combines all workflow repository interfaces.
type WorkflowRepositoryFacade interface {
	WorkflowReader
	WorkflowWriter
}

// WorkflowLogWriter appends audit trail rows. Append failures are diagnostic
// only and must not abort the transition they describe.
type WorkflowLogWriter interface {
	AppendWorkflowLog(ctx context.Context, entry domain.WorkflowLogEntry) error
}

// WorkflowLogReader reads the audit trail for one application.
type WorkflowLogReader interface {
	ListWorkflowLogs(ctx context.Context, applicationID string) ([]domain.WorkflowLogEntry, error)
}

// WorkflowLogRepositoryFacade combines audit trail read and write.
type WorkflowLogRepositoryFacade interface {
	WorkflowLogWriter
	WorkflowLogReader
}
