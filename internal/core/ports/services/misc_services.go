package services

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

// ClientSvcFacade manages the borrowing-client registry.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, params dto.ListClientsParams) (*dto.ListClientsResponse, error)
}

// TransferSvcFacade processes money transfers.
type TransferSvcFacade interface {
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error)
	SettleTransfer(ctx context.Context, transferID string, req dto.SettleTransferRequest, userID string) (*domain.Transfer, error)
	GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	ListTransfersByClient(ctx context.Context, clientID string) ([]domain.Transfer, error)
}

// NotificationSvcFacade reads and updates a user's notifications.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}
