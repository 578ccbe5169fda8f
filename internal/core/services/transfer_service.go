package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// transferService implements TransferSvcFacade. Disbursement transfers are
// only allowed against approved applications.
type transferService struct {
	BaseService
	transferRepo     portsrepo.TransferRepositoryFacade
	clientRepo       portsrepo.ClientRepositoryFacade
	applicationRepo  portsrepo.ApplicationRepositoryFacade
	notificationRepo portsrepo.NotificationRepository
}

// NewTransferService creates a new transfer service instance.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	applicationRepo portsrepo.ApplicationRepositoryFacade,
	notificationRepo portsrepo.NotificationRepository,
) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo:     transferRepo,
		clientRepo:       clientRepo,
		applicationRepo:  applicationRepo,
		notificationRepo: notificationRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// CreateTransfer starts a transfer in PENDING state.
func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewBadRequestError("amount must be positive")
	}

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("client %s not found", req.ClientID))
		}
		s.LogError(ctx, err, "Failed to resolve client for transfer", slog.String("client_id", req.ClientID))
		return nil, err
	}

	if req.Direction == "DISBURSEMENT" {
		if req.ApplicationID == nil {
			return nil, apperrors.NewBadRequestError("applicationID is required for a disbursement")
		}
		app, err := s.applicationRepo.FindApplicationByID(ctx, *req.ApplicationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("application %s not found", *req.ApplicationID))
			}
			s.LogError(ctx, err, "Failed to resolve application for disbursement", slog.String("application_id", *req.ApplicationID))
			return nil, err
		}
		if app.Status != domain.StatusApproved {
			return nil, apperrors.NewConflictError("only fully approved applications can be disbursed")
		}
	}

	now := time.Now()
	transfer := domain.Transfer{
		TransferID:    uuid.NewString(),
		ClientID:      req.ClientID,
		ApplicationID: req.ApplicationID,
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		Direction:     req.Direction,
		Status:        domain.TransferPending,
		Reference:     req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to save transfer", slog.String("transfer_id", transfer.TransferID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("direction", transfer.Direction),
		slog.String("amount", transfer.Amount.String()))
	return &transfer, nil
}

// SettleTransfer finalizes a pending transfer as COMPLETED or FAILED and
// notifies the transfer's creator. Settling twice is a conflict.
func (s *transferService) SettleTransfer(ctx context.Context, transferID string, req dto.SettleTransferRequest, userID string) (*domain.Transfer, error) {
	if req.Outcome == string(domain.TransferFailed) && (req.FailureReason == nil || *req.FailureReason == "") {
		return nil, apperrors.NewBadRequestError("failureReason is required when the outcome is FAILED")
	}

	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transfer %s not found", transferID))
		}
		s.LogError(ctx, err, "Failed to find transfer for settlement", slog.String("transfer_id", transferID))
		return nil, err
	}

	now := time.Now()
	status := domain.TransferStatus(req.Outcome)
	if err := s.transferRepo.SettleTransfer(ctx, transferID, status, req.FailureReason, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("transfer is already %s", transfer.Status))
		}
		s.LogError(ctx, err, "Failed to settle transfer", slog.String("transfer_id", transferID))
		return nil, err
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         transfer.CreatedBy,
		Message:        fmt.Sprintf("Transfer %s of %s %s is now %s.", transfer.Reference, transfer.Amount.String(), transfer.CurrencyCode, status),
		RelatedType:    "transfer",
		RelatedID:      transfer.TransferID,
		CreatedAt:      now,
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogWarn(ctx, "Failed to save transfer settlement notification",
			slog.String("error", err.Error()),
			slog.String("transfer_id", transferID))
	}

	transfer.Status = status
	transfer.FailureReason = req.FailureReason
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = userID

	s.LogInfo(ctx, "Transfer settled", slog.String("transfer_id", transferID), slog.String("status", string(status)))
	return transfer, nil
}

// GetTransferByID retrieves a specific transfer.
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transfer by ID", slog.String("transfer_id", transferID))
		}
		return nil, err
	}
	return transfer, nil
}

// ListTransfersByClient lists a client's transfers, newest first.
func (s *transferService) ListTransfersByClient(ctx context.Context, clientID string) ([]domain.Transfer, error) {
	transfers, err := s.transferRepo.ListTransfersByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.String("client_id", clientID))
		return nil, err
	}
	if transfers == nil {
		return []domain.Transfer{}, nil
	}
	return transfers, nil
}
