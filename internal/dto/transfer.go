package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// CreateTransferRequest starts a money transfer in PENDING state.
type CreateTransferRequest struct {
	ClientID      string          `json:"clientID" binding:"required,uuid"`
	ApplicationID *string         `json:"applicationID,omitempty" binding:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	Direction     string          `json:"direction" binding:"required,oneof=DISBURSEMENT REPAYMENT"`
	Reference     string          `json:"reference"`
}

// SettleTransferRequest finalizes a pending transfer.
type SettleTransferRequest struct {
	Outcome       string  `json:"outcome" binding:"required,oneof=COMPLETED FAILED"`
	FailureReason *string `json:"failureReason,omitempty"`
}

// TransferResponse is the public projection of a transfer.
type TransferResponse struct {
	TransferID    string          `json:"transferID"`
	ClientID      string          `json:"clientID"`
	ApplicationID *string         `json:"applicationID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Direction     string          `json:"direction"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference"`
	FailureReason *string         `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToTransferResponse converts a domain transfer to its response DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		ClientID:      t.ClientID,
		ApplicationID: t.ApplicationID,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		Direction:     t.Direction,
		Status:        string(t.Status),
		Reference:     t.Reference,
		FailureReason: t.FailureReason,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}
