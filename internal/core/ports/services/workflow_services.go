package services

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// WorkflowReaderSvc defines read operations on the approval workflow.
type WorkflowReaderSvc interface {
	// GetWorkflowData returns the application and its workflow record,
	// bootstrapping a default workflow row when none exists yet.
	GetWorkflowData(ctx context.Context, applicationID string) (*domain.LoanApplication, *domain.WorkflowState, error)

	// GetWorkflowLogs returns the audit trail for an application.
	GetWorkflowLogs(ctx context.Context, applicationID string) ([]domain.WorkflowLogEntry, error)
}

// WorkflowTransitionSvc applies approver decisions.
type WorkflowTransitionSvc interface {
	// SubmitDecision validates and applies an approve/reject/downsize request
	// on behalf of approverID, and reports the resulting status.
	SubmitDecision(ctx context.Context, req dto.TransitionRequest, approverID string) (*dto.TransitionResponse, error)
}

// WorkflowSvcFacade combines all workflow service interfaces.
type WorkflowSvcFacade interface {
	WorkflowReaderSvc
	WorkflowTransitionSvc
}
