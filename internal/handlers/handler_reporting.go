package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// reportingHandler serves the derived weekly aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.POST("/weekly/generate", h.generateWeeklyReports)
		reports.GET("/weekly", h.getWeeklyReports)
	}
}

// asOfParam parses the optional asOf query parameter, defaulting to now.
func asOfParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now(), true
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be a YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return asOf, true
}

// generateWeeklyReports godoc
// @Summary Generate the weekly reports
// @Description Recomputes and stores the per-role aggregates for the week containing asOf. Idempotent over unchanged data.
// @Tags reports
// @Produce json
// @Param asOf query string false "Date inside the target week (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.GenerateWeeklyReportsResponse
// @Security BearerAuth
// @Router /reports/weekly/generate [post]
func (h *reportingHandler) generateWeeklyReports(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}

	reports, err := h.reportingService.GenerateWeeklyReports(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateWeeklyReportsResponse{
		Success: true,
		Reports: dto.ToWeeklyReportResponses(reports),
	})
}

// getWeeklyReports godoc
// @Summary Get the stored weekly reports
// @Tags reports
// @Produce json
// @Param asOf query string false "Date inside the target week (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.WeeklyReportResponse
// @Security BearerAuth
// @Router /reports/weekly [get]
func (h *reportingHandler) getWeeklyReports(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}

	reports, err := h.reportingService.GetWeeklyReports(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWeeklyReportResponses(reports))
}
