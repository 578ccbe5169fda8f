package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
	"github.com/usawacapital/loan_origination_app/internal/middleware"
)

// workflowHandler handles the approval workflow endpoints.
type workflowHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

func newWorkflowHandler(ws portssvc.WorkflowSvcFacade) *workflowHandler {
	return &workflowHandler{workflowService: ws}
}

// registerWorkflowRoutes registers the transition submission endpoint.
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newWorkflowHandler(workflowService)

	workflow := rg.Group("/workflow")
	{
		workflow.POST("/transitions", h.submitTransition)
	}
}

// registerApplicationWorkflowRoutes hangs the workflow read endpoints off the
// application resource; called from registerApplicationRoutes.
func registerApplicationWorkflowRoutes(applications *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newWorkflowHandler(workflowService)

	applications.GET("/:id/workflow", h.getWorkflowData)
	applications.GET("/:id/workflow/logs", h.getWorkflowLogs)
}

// submitTransition godoc
// @Summary Submit a workflow decision
// @Description Applies an approve, reject or downsize decision to the current stage of a loan application. The acting approver is taken from the authenticated session.
// @Tags workflow
// @Accept json
// @Produce json
// @Param transition body dto.TransitionRequest true "Decision"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller's role does not match the current stage"
// @Failure 404 {object} ErrorResponse "Application not found"
// @Failure 409 {object} ErrorResponse "Stage already decided"
// @Security BearerAuth
// @Router /workflow/transitions [post]
func (h *workflowHandler) submitTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger.Info("Received workflow transition request",
		slog.String("loan_id", req.LoanID),
		slog.String("action", string(req.Action)),
		slog.String("approver_id", approverID))

	resp, err := h.workflowService.SubmitDecision(c.Request.Context(), req, approverID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getWorkflowData godoc
// @Summary Get workflow data for an application
// @Description Returns the application together with its approval-progress record, bootstrapping the record if it does not exist yet.
// @Tags workflow
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.WorkflowDataResponse
// @Failure 404 {object} ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id}/workflow [get]
func (h *workflowHandler) getWorkflowData(c *gin.Context) {
	applicationID := c.Param("id")

	app, workflow, err := h.workflowService.GetWorkflowData(c.Request.Context(), applicationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WorkflowDataResponse{
		Application: dto.ToApplicationResponse(app),
		Workflow:    dto.ToWorkflowResponse(workflow),
	})
}

// getWorkflowLogs godoc
// @Summary Get the workflow audit trail for an application
// @Tags workflow
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {array} domain.WorkflowLogEntry
// @Security BearerAuth
// @Router /applications/{id}/workflow/logs [get]
func (h *workflowHandler) getWorkflowLogs(c *gin.Context) {
	applicationID := c.Param("id")

	logs, err := h.workflowService.GetWorkflowLogs(c.Request.Context(), applicationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
