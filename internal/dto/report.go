package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// WeeklyReportResponse is one (week, role) aggregate row.
type WeeklyReportResponse struct {
	WeekStart      string          `json:"weekStart"`
	WeekEnd        string          `json:"weekEnd"`
	Role           string          `json:"role"`
	TotalCount     int             `json:"totalCount"`
	ApprovedCount  int             `json:"approvedCount"`
	RejectedCount  int             `json:"rejectedCount"`
	PendingCount   int             `json:"pendingCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	ApprovalRate   int             `json:"approvalRate"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// GenerateWeeklyReportsResponse is the report-generation trigger response.
type GenerateWeeklyReportsResponse struct {
	Success bool                   `json:"success"`
	Reports []WeeklyReportResponse `json:"reports"`
}

// ToWeeklyReportResponse converts a domain weekly report row.
func ToWeeklyReportResponse(r *domain.WeeklyReport) WeeklyReportResponse {
	return WeeklyReportResponse{
		WeekStart:      r.WeekStart.Format("2006-01-02"),
		WeekEnd:        r.WeekEnd.Format("2006-01-02"),
		Role:           string(r.Role),
		TotalCount:     r.TotalCount,
		ApprovedCount:  r.ApprovedCount,
		RejectedCount:  r.RejectedCount,
		PendingCount:   r.PendingCount,
		TotalAmount:    r.TotalAmount,
		ApprovedAmount: r.ApprovedAmount,
		ApprovalRate:   r.ApprovalRate,
		GeneratedAt:    r.GeneratedAt,
	}
}

// ToWeeklyReportResponses converts a slice of weekly report rows.
func ToWeeklyReportResponses(reports []domain.WeeklyReport) []WeeklyReportResponse {
	out := make([]WeeklyReportResponse, len(reports))
	for i := range reports {
		out[i] = ToWeeklyReportResponse(&reports[i])
	}
	return out
}
