package domain

import "github.com/shopspring/decimal"

// ApplicationStatus is the application-level lifecycle status. It is a closed
// set: pending_<stage> while a stage decision is outstanding, then exactly one
// of the terminal values.
type ApplicationStatus string

const (
	StatusPendingFieldOfficer ApplicationStatus = "pending_field_officer"
	StatusPendingManager      ApplicationStatus = "pending_manager"
	StatusPendingDirector     ApplicationStatus = "pending_director"
	StatusPendingChairperson  ApplicationStatus = "pending_chairperson"
	StatusPendingCEO          ApplicationStatus = "pending_ceo"
	StatusApproved            ApplicationStatus = "approved"
	StatusRejected            ApplicationStatus = "rejected"
	StatusRejectedFinal       ApplicationStatus = "rejected_final"
)

// PendingStatusFor maps a stage to the status an application carries while
// waiting on that stage's decision.
func PendingStatusFor(stage Stage) ApplicationStatus {
	switch stage {
	case StageFieldOfficer:
		return StatusPendingFieldOfficer
	case StageManager:
		return StatusPendingManager
	case StageDirector:
		return StatusPendingDirector
	case StageChairperson:
		return StatusPendingChairperson
	case StageCEO:
		return StatusPendingCEO
	}
	// Unreachable for valid stages; callers validate the stage first.
	return ApplicationStatus("pending_" + string(stage))
}

// IsTerminal reports whether no further workflow transition may succeed.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusRejectedFinal
}

// LoanApplication is one loan request. Fields other than Status, LoanAmount,
// RejectionReason, DownsizingReason and the audit trail are immutable after
// submission. Applications are never hard-deleted.
type LoanApplication struct {
	ApplicationID    string            `json:"applicationID"` // Primary Key (e.g., UUID)
	ClientID         string            `json:"clientID"`
	ClientName       string            `json:"clientName"`
	LoanAmount       decimal.Decimal   `json:"loanAmount"`
	LoanType         string            `json:"loanType"`
	Purpose          string            `json:"purpose"`
	MonthlyIncome    decimal.Decimal   `json:"monthlyIncome"`
	EmploymentStatus string            `json:"employmentStatus"`
	ContactPhone     string            `json:"contactPhone"`
	NationalID       string            `json:"nationalID"`
	Status           ApplicationStatus `json:"status"`
	RejectionReason  *string           `json:"rejectionReason,omitempty"`
	DownsizingReason *string           `json:"downsizingReason,omitempty"`
	AuditFields
}
