package models

import (
	"database/sql"
	"time"
)

// Workflow is the persisted approval pointer for a loan application. The
// per-stage decisions live in workflow_stage_decisions, one row per stage.
type Workflow struct {
	WorkflowID        string `db:"workflow_id"`
	LoanApplicationID string `db:"loan_application_id"`
	CurrentStage      string `db:"current_stage"`
	AuditFields
}

// WorkflowStageDecision is one stage's decision row. Approved is NULL until
// the stage has been decided.
type WorkflowStageDecision struct {
	WorkflowID   string         `db:"workflow_id"`
	Stage        string         `db:"stage"`
	Approved     sql.NullBool   `db:"approved"`
	Notes        sql.NullString `db:"notes"`
	ApproverName sql.NullString `db:"approver_name"`
	DecidedAt    sql.NullTime   `db:"decided_at"`
}

// WorkflowLogEntry is an append-only audit row for workflow activity.
type WorkflowLogEntry struct {
	LogID             string         `db:"log_id"`
	LoanApplicationID string         `db:"loan_application_id"`
	Stage             string         `db:"stage"`
	Action            string         `db:"action"`
	PerformedBy       string         `db:"performed_by"`
	Notes             sql.NullString `db:"notes"`
	CreatedAt         time.Time      `db:"created_at"`
}
