package repositories

import (
	"context"
	"time"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// TransferReader defines read operations for transfers.
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	ListTransfersByClient(ctx context.Context, clientID string) ([]domain.Transfer, error)
}

// TransferWriter defines write operations for transfers.
type TransferWriter interface {
	SaveTransfer(ctx context.Context, transfer domain.Transfer) error

	// SettleTransfer moves a PENDING transfer to COMPLETED or FAILED. The
	// store must reject settlement of an already-settled transfer with
	// apperrors.ErrConflict.
	SettleTransfer(ctx context.Context, transferID string, status domain.TransferStatus, failureReason *string, updatedBy string, updatedAt time.Time) error
}

// TransferRepositoryFacade combines all transfer repository interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}
