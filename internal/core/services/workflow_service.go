package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// workflowService implements WorkflowSvcFacade. It is the only writer of
// workflow state and application status outside of submission.
type workflowService struct {
	BaseService
	workflowRepo    portsrepo.WorkflowRepositoryFacade
	workflowLogRepo portsrepo.WorkflowLogRepositoryFacade
	applicationRepo portsrepo.ApplicationRepositoryFacade
	userReader      portssvc.UserReaderSvc
}

// NewWorkflowService creates a new workflow service instance.
func NewWorkflowService(
	workflowRepo portsrepo.WorkflowRepositoryFacade,
	workflowLogRepo portsrepo.WorkflowLogRepositoryFacade,
	applicationRepo portsrepo.ApplicationRepositoryFacade,
	userReader portssvc.UserReaderSvc,
) portssvc.WorkflowSvcFacade {
	return &workflowService{
		workflowRepo:    workflowRepo,
		workflowLogRepo: workflowLogRepo,
		applicationRepo: applicationRepo,
		userReader:      userReader,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// GetWorkflowData returns the application and its workflow record. A missing
// workflow row is bootstrapped on the spot so callers never see an absent
// record for an existing application.
func (s *workflowService) GetWorkflowData(ctx context.Context, applicationID string) (*domain.LoanApplication, *domain.WorkflowState, error) {
	app, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find application for workflow read", slog.String("application_id", applicationID))
		}
		return nil, nil, err
	}

	workflow, err := s.ensureWorkflow(ctx, app)
	if err != nil {
		return nil, nil, err
	}
	return app, workflow, nil
}

// ensureWorkflow reads the workflow row, inserting the default one when the
// application has never been read before. Losing the insert race to a
// concurrent reader is fine; the repository falls back to re-reading.
func (s *workflowService) ensureWorkflow(ctx context.Context, app *domain.LoanApplication) (*domain.WorkflowState, error) {
	workflow, err := s.workflowRepo.FindWorkflowByApplicationID(ctx, app.ApplicationID)
	if err == nil {
		return workflow, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read workflow record", slog.String("application_id", app.ApplicationID))
		return nil, err
	}

	now := time.Now()
	fresh := domain.NewWorkflowState(uuid.NewString(), app.ApplicationID, domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     app.CreatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: app.CreatedBy,
	})
	workflow, err = s.workflowRepo.EnsureWorkflow(ctx, fresh)
	if err != nil {
		s.LogError(ctx, err, "Failed to bootstrap workflow record", slog.String("application_id", app.ApplicationID))
		return nil, err
	}
	s.LogInfo(ctx, "Bootstrapped workflow record", slog.String("application_id", app.ApplicationID), slog.String("workflow_id", workflow.WorkflowID))
	return workflow, nil
}

// GetWorkflowLogs returns the audit trail for an application, newest first.
func (s *workflowService) GetWorkflowLogs(ctx context.Context, applicationID string) ([]domain.WorkflowLogEntry, error) {
	logs, err := s.workflowLogRepo.ListWorkflowLogs(ctx, applicationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workflow logs", slog.String("application_id", applicationID))
		return nil, err
	}
	if logs == nil {
		return []domain.WorkflowLogEntry{}, nil
	}
	return logs, nil
}

// SubmitDecision applies one approver decision. Every validation happens
// before any write; the write itself is a single repository transaction.
func (s *workflowService) SubmitDecision(ctx context.Context, req dto.TransitionRequest, approverID string) (*dto.TransitionResponse, error) {
	if req.Action == domain.DecisionDownsize {
		if req.DownsizedAmount == nil || !req.DownsizedAmount.IsPositive() {
			return nil, apperrors.NewBadRequestError("downsized_amount must be a positive amount when action is downsize")
		}
	}

	app, err := s.applicationRepo.FindApplicationByID(ctx, req.LoanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("loan application %s not found", req.LoanID))
		}
		s.LogError(ctx, err, "Failed to load application for transition", slog.String("application_id", req.LoanID))
		return nil, err
	}

	if app.Status.IsTerminal() {
		return nil, apperrors.NewConflictError(fmt.Sprintf("application is already %s; no further decisions are accepted", app.Status))
	}

	workflow, err := s.ensureWorkflow(ctx, app)
	if err != nil {
		return nil, err
	}

	approver, err := s.userReader.GetUserByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("approver account not found")
		}
		s.LogError(ctx, err, "Failed to resolve approver", slog.String("user_id", approverID))
		return nil, err
	}

	if req.Action == domain.DecisionDownsize {
		return s.applyDownsize(ctx, app, workflow, approver, req)
	}

	return s.applyStageDecision(ctx, app, workflow, approver, req)
}

func (s *workflowService) applyStageDecision(ctx context.Context, app *domain.LoanApplication, workflow *domain.WorkflowState, approver *domain.User, req dto.TransitionRequest) (*dto.TransitionResponse, error) {
	stage := workflow.CurrentStage
	if !stage.IsValid() {
		// Unreachable when the bootstrap invariant holds; a row got corrupted.
		s.LogError(ctx, fmt.Errorf("unknown stage %q", stage), "Workflow record carries an unknown current stage", slog.String("workflow_id", workflow.WorkflowID))
		return nil, apperrors.NewInternalServerError(fmt.Sprintf("workflow record for application %s is in an unknown stage", app.ApplicationID))
	}

	approverStage, ok := approver.Role.StageFor()
	if !ok || approverStage != stage {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("decision for the %s stage requires the %s role", stage, stage))
	}

	if workflow.DecisionFor(stage).Decided() {
		return nil, apperrors.NewConflictError(fmt.Sprintf("the %s stage has already been decided", stage))
	}

	now := time.Now()
	approved := req.Action == domain.DecisionApprove
	decision := domain.StageDecision{
		Approved:     &approved,
		ApproverName: &approver.Name,
		DecidedAt:    &now,
	}
	if req.Notes != "" {
		notes := req.Notes
		decision.Notes = &notes
	}

	update := portsrepo.TransitionUpdate{
		WorkflowID:        workflow.WorkflowID,
		LoanApplicationID: app.ApplicationID,
		Stage:             stage,
		Decision:          decision,
		UpdatedBy:         approver.UserID,
		UpdatedAt:         now,
	}

	var resp dto.TransitionResponse
	var logAction string
	if approved {
		if next, hasNext := stage.Next(); hasNext {
			update.NextStage = &next
			update.NewStatus = domain.PendingStatusFor(next)
			nextStr := string(next)
			resp = dto.TransitionResponse{
				Success:   true,
				Status:    string(update.NewStatus),
				NextStage: &nextStr,
				Message:   fmt.Sprintf("Approved by %s. Application moved to the %s stage.", stage.DisplayName(), next.DisplayName()),
			}
			update.Notification = s.newNotification(app, fmt.Sprintf("Your loan application has been approved by the %s and is now awaiting %s review.", stage.DisplayName(), next.DisplayName()), now)
		} else {
			update.NewStatus = domain.StatusApproved
			resp = dto.TransitionResponse{
				Success: true,
				Status:  string(domain.StatusApproved),
				IsFinal: true,
				Message: "Approved by CEO. Application fully approved.",
			}
			update.Notification = s.newNotification(app, "Congratulations! Your loan application has been fully approved.", now)
		}
		logAction = fmt.Sprintf("Approved by %s", stage.DisplayName())
	} else {
		update.RejectionReason = decision.Notes
		if stage.IsFinal() {
			update.NewStatus = domain.StatusRejectedFinal
			update.Notification = s.newNotification(app, "Your loan application was rejected by the CEO. This decision is final.", now)
			resp = dto.TransitionResponse{
				Success: true,
				Status:  string(domain.StatusRejectedFinal),
				IsFinal: true,
				Message: "Rejected by CEO. This decision is final.",
			}
		} else {
			update.NewStatus = domain.StatusRejected
			update.Notification = s.newNotification(app, fmt.Sprintf("Your loan application was rejected at the %s stage.", stage.DisplayName()), now)
			resp = dto.TransitionResponse{
				Success: true,
				Status:  string(domain.StatusRejected),
				IsFinal: true,
				Message: fmt.Sprintf("Rejected by %s.", stage.DisplayName()),
			}
		}
		logAction = fmt.Sprintf("Rejected by %s", stage.DisplayName())
	}

	if err := s.workflowRepo.ApplyTransition(ctx, update); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent decision won the race between our precheck and the
			// row lock.
			return nil, apperrors.NewConflictError(fmt.Sprintf("the %s stage has already been decided", stage))
		}
		s.LogError(ctx, err, "Failed to apply workflow transition",
			slog.String("application_id", app.ApplicationID),
			slog.String("stage", string(stage)),
			slog.String("action", string(req.Action)))
		return nil, err
	}

	s.appendLog(ctx, domain.WorkflowLogEntry{
		LogID:             uuid.NewString(),
		LoanApplicationID: app.ApplicationID,
		Stage:             stage,
		Action:            logAction,
		PerformedBy:       approver.UserID,
		Notes:             decision.Notes,
		CreatedAt:         now,
	})

	s.LogInfo(ctx, "Workflow transition applied",
		slog.String("application_id", app.ApplicationID),
		slog.String("stage", string(stage)),
		slog.String("action", string(req.Action)),
		slog.String("new_status", resp.Status))
	return &resp, nil
}

func (s *workflowService) applyDownsize(ctx context.Context, app *domain.LoanApplication, workflow *domain.WorkflowState, approver *domain.User, req dto.TransitionRequest) (*dto.TransitionResponse, error) {
	now := time.Now()
	reason := req.Notes
	if reason == "" {
		reason = fmt.Sprintf("Loan amount adjusted from %s to %s", app.LoanAmount.String(), req.DownsizedAmount.String())
	}

	update := portsrepo.DownsizeUpdate{
		LoanApplicationID: app.ApplicationID,
		NewAmount:         *req.DownsizedAmount,
		Reason:            reason,
		Notification: s.newNotification(app,
			fmt.Sprintf("The requested amount on your loan application was adjusted from %s to %s.", app.LoanAmount.String(), req.DownsizedAmount.String()), now),
		UpdatedBy: approver.UserID,
		UpdatedAt: now,
	}

	if err := s.workflowRepo.ApplyDownsize(ctx, update); err != nil {
		s.LogError(ctx, err, "Failed to apply downsize",
			slog.String("application_id", app.ApplicationID),
			slog.String("new_amount", req.DownsizedAmount.String()))
		return nil, err
	}

	s.appendLog(ctx, domain.WorkflowLogEntry{
		LogID:             uuid.NewString(),
		LoanApplicationID: app.ApplicationID,
		Stage:             workflow.CurrentStage,
		Action:            fmt.Sprintf("Loan amount downsized to %s", req.DownsizedAmount.String()),
		PerformedBy:       approver.UserID,
		CreatedAt:         now,
	})

	currentStage := string(workflow.CurrentStage)
	return &dto.TransitionResponse{
		Success:   true,
		Status:    string(app.Status),
		NextStage: &currentStage,
		Message:   fmt.Sprintf("Loan amount downsized to %s.", req.DownsizedAmount.String()),
	}, nil
}

// appendLog writes an audit row. Failures are logged and swallowed: the trail
// is diagnostic, the transition it describes has already committed.
func (s *workflowService) appendLog(ctx context.Context, entry domain.WorkflowLogEntry) {
	if err := s.workflowLogRepo.AppendWorkflowLog(ctx, entry); err != nil {
		s.LogWarn(ctx, "Failed to append workflow log entry",
			slog.String("error", err.Error()),
			slog.String("application_id", entry.LoanApplicationID),
			slog.String("action", entry.Action))
	}
}

// newNotification builds the creator-addressed notification inserted in the
// same transaction as the state change.
func (s *workflowService) newNotification(app *domain.LoanApplication, message string, now time.Time) domain.Notification {
	return domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         app.CreatedBy,
		Message:        message,
		RelatedType:    "loan_application",
		RelatedID:      app.ApplicationID,
		CreatedAt:      now,
	}
}
