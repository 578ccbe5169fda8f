package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
	"github.com/usawacapital/loan_origination_app/internal/middleware"
)

// applicationHandler handles loan application endpoints.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade) *applicationHandler {
	return &applicationHandler{applicationService: as}
}

// registerApplicationRoutes registers all application-related routes.
func registerApplicationRoutes(rg *gin.RouterGroup, applicationService portssvc.ApplicationSvcFacade, workflowService portssvc.WorkflowSvcFacade) {
	h := newApplicationHandler(applicationService)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.submitApplication)
		applications.GET("", h.listApplications)
		applications.GET("/:id", h.getApplication)
	}
	registerApplicationWorkflowRoutes(applications, workflowService)
}

// submitApplication godoc
// @Summary Submit a loan application
// @Description Creates a new loan application in its initial pending status and bootstraps its approval workflow.
// @Tags applications
// @Accept json
// @Produce json
// @Param application body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /applications [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	app, err := h.applicationService.SubmitApplication(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Loan application submitted", slog.String("application_id", app.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// getApplication godoc
// @Summary Get a loan application by ID
// @Tags applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 404 {object} ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /applications/{id} [get]
func (h *applicationHandler) getApplication(c *gin.Context) {
	applicationID := c.Param("id")

	app, err := h.applicationService.GetApplicationByID(c.Request.Context(), applicationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// listApplications godoc
// @Summary List loan applications
// @Description Returns a token-paginated page of applications, optionally filtered by status.
// @Tags applications
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Param status query string false "Filter by application status"
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Security BearerAuth
// @Router /applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	var params dto.ListApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.applicationService.ListApplications(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
