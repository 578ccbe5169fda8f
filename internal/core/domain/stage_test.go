package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

func TestStageOrder(t *testing.T) {
	order := domain.StageOrder()

	assert.Equal(t, []domain.Stage{
		domain.StageFieldOfficer,
		domain.StageManager,
		domain.StageDirector,
		domain.StageChairperson,
		domain.StageCEO,
	}, order)
	assert.Equal(t, domain.StageFieldOfficer, domain.FirstStage())
}

func TestStage_Next(t *testing.T) {
	tests := []struct {
		name     string
		stage    domain.Stage
		want     domain.Stage
		wantNext bool
	}{
		{name: "field officer advances to manager", stage: domain.StageFieldOfficer, want: domain.StageManager, wantNext: true},
		{name: "manager advances to director", stage: domain.StageManager, want: domain.StageDirector, wantNext: true},
		{name: "director advances to chairperson", stage: domain.StageDirector, want: domain.StageChairperson, wantNext: true},
		{name: "chairperson advances to ceo", stage: domain.StageChairperson, want: domain.StageCEO, wantNext: true},
		{name: "ceo is the last stage", stage: domain.StageCEO, wantNext: false},
		{name: "unknown stage has no successor", stage: domain.Stage("intern"), wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.stage.Next()
			assert.Equal(t, tt.wantNext, ok)
			if tt.wantNext {
				assert.Equal(t, tt.want, next)
			}
		})
	}
}

func TestStage_IsFinal(t *testing.T) {
	for _, stage := range domain.StageOrder() {
		assert.Equal(t, stage == domain.StageCEO, stage.IsFinal(), "stage %s", stage)
	}
}

func TestStage_IsValid(t *testing.T) {
	for _, stage := range domain.StageOrder() {
		assert.True(t, stage.IsValid(), "stage %s", stage)
	}
	assert.False(t, domain.Stage("").IsValid())
	assert.False(t, domain.Stage("admin").IsValid())
}

func TestPendingStatusFor(t *testing.T) {
	tests := []struct {
		stage domain.Stage
		want  domain.ApplicationStatus
	}{
		{domain.StageFieldOfficer, domain.StatusPendingFieldOfficer},
		{domain.StageManager, domain.StatusPendingManager},
		{domain.StageDirector, domain.StatusPendingDirector},
		{domain.StageChairperson, domain.StatusPendingChairperson},
		{domain.StageCEO, domain.StatusPendingCEO},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.PendingStatusFor(tt.stage))
	}
}

func TestApplicationStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.StatusApproved.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.True(t, domain.StatusRejectedFinal.IsTerminal())

	for _, stage := range domain.StageOrder() {
		assert.False(t, domain.PendingStatusFor(stage).IsTerminal(), "stage %s", stage)
	}
}

func TestRole_StageFor(t *testing.T) {
	stage, ok := domain.RoleManager.StageFor()
	assert.True(t, ok)
	assert.Equal(t, domain.StageManager, stage)

	_, ok = domain.RoleAdmin.StageFor()
	assert.False(t, ok)
}

func TestNewWorkflowState(t *testing.T) {
	w := domain.NewWorkflowState("wf-1", "app-1", domain.AuditFields{CreatedBy: "user-1"})

	assert.Equal(t, domain.FirstStage(), w.CurrentStage)
	assert.Len(t, w.Decisions, len(domain.StageOrder()))
	for _, stage := range domain.StageOrder() {
		assert.False(t, w.DecisionFor(stage).Decided(), "stage %s", stage)
	}
}

func TestWorkflowState_DecisionFor_NilMap(t *testing.T) {
	w := domain.WorkflowState{}
	assert.False(t, w.DecisionFor(domain.StageManager).Decided())
}

func TestReportingStages_ExcludeFieldOfficer(t *testing.T) {
	stages := domain.ReportingStages()

	assert.NotContains(t, stages, domain.StageFieldOfficer)
	assert.Equal(t, []domain.Stage{
		domain.StageManager,
		domain.StageDirector,
		domain.StageChairperson,
		domain.StageCEO,
	}, stages)
}
