package domain

import "time"

// StageDecision is the recorded outcome of one stage for one application.
// Approved is tri-state: nil means not yet decided. A decision, once set, is
// never reset.
type StageDecision struct {
	Approved     *bool      `json:"approved"`
	Notes        *string    `json:"notes,omitempty"`
	ApproverName *string    `json:"approverName,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
}

// Decided reports whether this stage has a finalized outcome.
func (d StageDecision) Decided() bool { return d.Approved != nil }

// WorkflowState is the authoritative approval-progress record, one per
// application (unique on LoanApplicationID). CurrentStage points at whose
// turn it is; after a rejection it freezes at the rejecting stage.
type WorkflowState struct {
	WorkflowID        string                  `json:"workflowID"` // Primary Key (e.g., UUID)
	LoanApplicationID string                  `json:"loanApplicationID"`
	CurrentStage      Stage                   `json:"currentStage"`
	Decisions         map[Stage]StageDecision `json:"decisions"`
	AuditFields
}

// NewWorkflowState returns the default record the bootstrap layer inserts the
// first time an application's workflow is read: all decisions open and the
// pointer at the first stage.
func NewWorkflowState(workflowID, applicationID string, audit AuditFields) WorkflowState {
	decisions := make(map[Stage]StageDecision, len(stageOrder))
	for _, st := range stageOrder {
		decisions[st] = StageDecision{}
	}
	return WorkflowState{
		WorkflowID:        workflowID,
		LoanApplicationID: applicationID,
		CurrentStage:      FirstStage(),
		Decisions:         decisions,
		AuditFields:       audit,
	}
}

// DecisionFor returns the decision record for a stage, zero valued when the
// stage was never touched.
func (w WorkflowState) DecisionFor(stage Stage) StageDecision {
	if w.Decisions == nil {
		return StageDecision{}
	}
	return w.Decisions[stage]
}

// DecisionKind is what an approver asked the engine to do.
type DecisionKind string

const (
	DecisionApprove  DecisionKind = "approve"
	DecisionReject   DecisionKind = "reject"
	DecisionDownsize DecisionKind = "downsize"
)

// WorkflowLogEntry is one append-only audit trail row. It is diagnostic, not
// authoritative; writes are best effort.
type WorkflowLogEntry struct {
	LogID             string    `json:"logID"`
	LoanApplicationID string    `json:"loanApplicationID"`
	Stage             Stage     `json:"stage"`
	Action            string    `json:"action"`
	PerformedBy       string    `json:"performedBy"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
