package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// CreateApplicationRequest is the submission body for a new loan application.
type CreateApplicationRequest struct {
	ClientID         string          `json:"clientID" binding:"required,uuid"`
	LoanAmount       decimal.Decimal `json:"loanAmount" binding:"required"`
	LoanType         string          `json:"loanType" binding:"required"`
	Purpose          string          `json:"purpose" binding:"required"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	EmploymentStatus string          `json:"employmentStatus"`
	ContactPhone     string          `json:"contactPhone"`
	NationalID       string          `json:"nationalID"`
}

// ApplicationResponse is the client-facing projection of a loan application.
type ApplicationResponse struct {
	ApplicationID    string          `json:"applicationID"`
	ClientID         string          `json:"clientID"`
	ClientName       string          `json:"clientName"`
	LoanAmount       decimal.Decimal `json:"loanAmount"`
	LoanType         string          `json:"loanType"`
	Purpose          string          `json:"purpose"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	EmploymentStatus string          `json:"employmentStatus"`
	ContactPhone     string          `json:"contactPhone"`
	NationalID       string          `json:"nationalID"`
	Status           string          `json:"status"`
	RejectionReason  *string         `json:"rejectionReason,omitempty"`
	DownsizingReason *string         `json:"downsizingReason,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ListApplicationsParams carries token pagination parameters.
type ListApplicationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
}

// ListApplicationsResponse is a page of applications plus the next page token.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToApplicationResponse converts a domain application to its response DTO.
func ToApplicationResponse(a *domain.LoanApplication) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:    a.ApplicationID,
		ClientID:         a.ClientID,
		ClientName:       a.ClientName,
		LoanAmount:       a.LoanAmount,
		LoanType:         a.LoanType,
		Purpose:          a.Purpose,
		MonthlyIncome:    a.MonthlyIncome,
		EmploymentStatus: a.EmploymentStatus,
		ContactPhone:     a.ContactPhone,
		NationalID:       a.NationalID,
		Status:           string(a.Status),
		RejectionReason:  a.RejectionReason,
		DownsizingReason: a.DownsizingReason,
		CreatedAt:        a.CreatedAt,
		CreatedBy:        a.CreatedBy,
		LastUpdatedAt:    a.LastUpdatedAt,
	}
}

// ToApplicationResponses converts a slice of domain applications.
func ToApplicationResponses(apps []domain.LoanApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = ToApplicationResponse(&apps[i])
	}
	return out
}
