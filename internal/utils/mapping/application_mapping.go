package mapping

import (
	"database/sql"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	"github.com/usawacapital/loan_origination_app/internal/models"
)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// ToModelLoanApplication converts a domain LoanApplication to a model LoanApplication
func ToModelLoanApplication(d domain.LoanApplication) models.LoanApplication {
	return models.LoanApplication{
		ApplicationID:    d.ApplicationID,
		ClientID:         d.ClientID,
		ClientName:       d.ClientName,
		LoanAmount:       d.LoanAmount,
		LoanType:         d.LoanType,
		Purpose:          d.Purpose,
		MonthlyIncome:    d.MonthlyIncome,
		EmploymentStatus: d.EmploymentStatus,
		ContactPhone:     d.ContactPhone,
		NationalID:       d.NationalID,
		Status:           string(d.Status),
		RejectionReason:  nullString(d.RejectionReason),
		DownsizingReason: nullString(d.DownsizingReason),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoanApplication converts a model LoanApplication to a domain LoanApplication
func ToDomainLoanApplication(m models.LoanApplication) domain.LoanApplication {
	return domain.LoanApplication{
		ApplicationID:    m.ApplicationID,
		ClientID:         m.ClientID,
		ClientName:       m.ClientName,
		LoanAmount:       m.LoanAmount,
		LoanType:         m.LoanType,
		Purpose:          m.Purpose,
		MonthlyIncome:    m.MonthlyIncome,
		EmploymentStatus: m.EmploymentStatus,
		ContactPhone:     m.ContactPhone,
		NationalID:       m.NationalID,
		Status:           domain.ApplicationStatus(m.Status),
		RejectionReason:  stringPtr(m.RejectionReason),
		DownsizingReason: stringPtr(m.DownsizingReason),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanApplicationSlice converts a slice of model LoanApplications to domain form
func ToDomainLoanApplicationSlice(ms []models.LoanApplication) []domain.LoanApplication {
	ds := make([]domain.LoanApplication, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoanApplication(m)
	}
	return ds
}
