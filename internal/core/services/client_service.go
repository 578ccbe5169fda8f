package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
	"github.com/usawacapital/loan_origination_app/internal/dto"
)

const defaultClientPageSize = 20

// clientService implements ClientSvcFacade.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service instance.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient registers a new borrowing client.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	now := time.Now()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Address:    req.Address,
		Occupation: req.Occupation,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a client with this national ID already exists")
		}
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// GetClientByID retrieves a specific client.
func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client by ID", slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

// ListClients retrieves a token-paginated page of clients.
func (s *clientService) ListClients(ctx context.Context, params dto.ListClientsParams) (*dto.ListClientsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultClientPageSize
	}
	clients, nextToken, err := s.clientRepo.ListClients(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients", slog.Int("limit", limit))
		return nil, err
	}
	return &dto.ListClientsResponse{
		Clients:   dto.ToClientResponses(clients),
		NextToken: nextToken,
	}, nil
}
