package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyReport is a derived aggregate keyed by (WeekStart, Role). It is never
// the source of truth: regenerating it for an unchanged week must reproduce
// identical numbers.
type WeeklyReport struct {
	ReportID       string          `json:"reportID"`
	WeekStart      time.Time       `json:"weekStart"` // Monday, midnight UTC
	WeekEnd        time.Time       `json:"weekEnd"`   // following Sunday
	Role           Stage           `json:"role"`
	TotalCount     int             `json:"totalCount"`
	ApprovedCount  int             `json:"approvedCount"`
	RejectedCount  int             `json:"rejectedCount"`
	PendingCount   int             `json:"pendingCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	ApprovalRate   int             `json:"approvalRate"` // round(approved/total*100), 0 when total is 0
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// StageActivityRow is one application's contribution to a weekly window for
// one reporting role, as read back from the store for aggregation.
type StageActivityRow struct {
	ApplicationID string
	LoanAmount    decimal.Decimal
	Approved      *bool // that stage's decision flag; nil means still pending there
}
