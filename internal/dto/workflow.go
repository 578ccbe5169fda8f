package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// TransitionRequest is the unified transition submission body. The approver
// identity is taken from the authenticated context, never from the body.
type TransitionRequest struct {
	Action          domain.DecisionKind `json:"action" binding:"required,oneof=approve reject downsize"`
	LoanID          string              `json:"loan_id" binding:"required,uuid"`
	Notes           string              `json:"notes"`
	DownsizedAmount *decimal.Decimal    `json:"downsized_amount,omitempty"`
}

// TransitionResponse reports the outcome of a successful transition.
type TransitionResponse struct {
	Success   bool    `json:"success"`
	Status    string  `json:"status"`
	NextStage *string `json:"next_stage"`
	IsFinal   bool    `json:"is_final"`
	Message   string  `json:"message"`
}

// StageDecisionResponse is one stage's recorded outcome.
type StageDecisionResponse struct {
	Stage        string     `json:"stage"`
	Approved     *bool      `json:"approved"`
	Notes        *string    `json:"notes,omitempty"`
	ApproverName *string    `json:"approverName,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
}

// WorkflowResponse is the approval-progress record exposed to the UI.
type WorkflowResponse struct {
	WorkflowID        string                  `json:"workflowID"`
	LoanApplicationID string                  `json:"loanApplicationID"`
	CurrentStage      string                  `json:"currentStage"`
	Stages            []StageDecisionResponse `json:"stages"`
}

// WorkflowDataResponse bundles the workflow record with its parent
// application, matching the UI's single read hook.
type WorkflowDataResponse struct {
	Application ApplicationResponse `json:"application"`
	Workflow    WorkflowResponse    `json:"workflow"`
}

// ToWorkflowResponse converts a domain workflow state, emitting stages in
// chain order.
func ToWorkflowResponse(w *domain.WorkflowState) WorkflowResponse {
	resp := WorkflowResponse{
		WorkflowID:        w.WorkflowID,
		LoanApplicationID: w.LoanApplicationID,
		CurrentStage:      string(w.CurrentStage),
		Stages:            make([]StageDecisionResponse, 0, len(domain.StageOrder())),
	}
	for _, stage := range domain.StageOrder() {
		d := w.DecisionFor(stage)
		resp.Stages = append(resp.Stages, StageDecisionResponse{
			Stage:        string(stage),
			Approved:     d.Approved,
			Notes:        d.Notes,
			ApproverName: d.ApproverName,
			DecidedAt:    d.DecidedAt,
		})
	}
	return resp
}
