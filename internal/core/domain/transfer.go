package domain

import "github.com/shopspring/decimal"

// TransferStatus is the lifecycle of a money transfer.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferFailed    TransferStatus = "FAILED"
)

// Transfer is one money movement processed on behalf of a client, typically a
// disbursement of an approved loan or a repayment collection.
type Transfer struct {
	TransferID    string          `json:"transferID"` // Primary Key (e.g., UUID)
	ClientID      string          `json:"clientID"`
	ApplicationID *string         `json:"applicationID,omitempty"` // set when the transfer disburses a loan
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Direction     string          `json:"direction"` // "DISBURSEMENT" or "REPAYMENT"
	Status        TransferStatus  `json:"status"`
	Reference     string          `json:"reference"`
	FailureReason *string         `json:"failureReason,omitempty"`
	AuditFields
}
