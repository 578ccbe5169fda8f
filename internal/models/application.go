package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// LoanApplication is the persisted form of a loan application.
// Status is always one of the domain.ApplicationStatus values; the database
// enforces the enum via a CHECK constraint.
type LoanApplication struct {
	ApplicationID    string          `db:"application_id"`
	ClientID         string          `db:"client_id"`
	ClientName       string          `db:"client_name"`
	LoanAmount       decimal.Decimal `db:"loan_amount"`
	LoanType         string          `db:"loan_type"`
	Purpose          string          `db:"purpose"`
	MonthlyIncome    decimal.Decimal `db:"monthly_income"`
	EmploymentStatus string          `db:"employment_status"`
	ContactPhone     string          `db:"contact_phone"`
	NationalID       string          `db:"national_id"`
	Status           string          `db:"status"`
	RejectionReason  sql.NullString  `db:"rejection_reason"`
	DownsizingReason sql.NullString  `db:"downsizing_reason"`
	AuditFields
}
