package mapping

import (
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	"github.com/usawacapital/loan_origination_app/internal/models"
)

// ToDomainWorkflowState assembles a domain WorkflowState from the workflow row
// plus its stage decision rows. Stages missing a row come back undecided.
func ToDomainWorkflowState(m models.Workflow, decisions []models.WorkflowStageDecision) domain.WorkflowState {
	ds := make(map[domain.Stage]domain.StageDecision, len(domain.StageOrder()))
	for _, st := range domain.StageOrder() {
		ds[st] = domain.StageDecision{}
	}
	for _, row := range decisions {
		ds[domain.Stage(row.Stage)] = ToDomainStageDecision(row)
	}
	return domain.WorkflowState{
		WorkflowID:        m.WorkflowID,
		LoanApplicationID: m.LoanApplicationID,
		CurrentStage:      domain.Stage(m.CurrentStage),
		Decisions:         ds,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorkflow converts the pointer portion of a domain WorkflowState.
func ToModelWorkflow(d domain.WorkflowState) models.Workflow {
	return models.Workflow{
		WorkflowID:        d.WorkflowID,
		LoanApplicationID: d.LoanApplicationID,
		CurrentStage:      string(d.CurrentStage),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStageDecision converts one decision row.
func ToDomainStageDecision(m models.WorkflowStageDecision) domain.StageDecision {
	d := domain.StageDecision{
		Notes:        stringPtr(m.Notes),
		ApproverName: stringPtr(m.ApproverName),
	}
	if m.Approved.Valid {
		approved := m.Approved.Bool
		d.Approved = &approved
	}
	if m.DecidedAt.Valid {
		t := m.DecidedAt.Time
		d.DecidedAt = &t
	}
	return d
}

// ToDomainWorkflowLogEntry converts one audit log row.
func ToDomainWorkflowLogEntry(m models.WorkflowLogEntry) domain.WorkflowLogEntry {
	return domain.WorkflowLogEntry{
		LogID:             m.LogID,
		LoanApplicationID: m.LoanApplicationID,
		Stage:             domain.Stage(m.Stage),
		Action:            m.Action,
		PerformedBy:       m.PerformedBy,
		Notes:             stringPtr(m.Notes),
		CreatedAt:         m.CreatedAt,
	}
}

// ToModelWorkflowLogEntry converts a domain audit entry for insertion.
func ToModelWorkflowLogEntry(d domain.WorkflowLogEntry) models.WorkflowLogEntry {
	return models.WorkflowLogEntry{
		LogID:             d.LogID,
		LoanApplicationID: d.LoanApplicationID,
		Stage:             string(d.Stage),
		Action:            d.Action,
		PerformedBy:       d.PerformedBy,
		Notes:             nullString(d.Notes),
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainWorkflowLogSlice converts audit rows to domain form.
func ToDomainWorkflowLogSlice(ms []models.WorkflowLogEntry) []domain.WorkflowLogEntry {
	ds := make([]domain.WorkflowLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkflowLogEntry(m)
	}
	return ds
}
