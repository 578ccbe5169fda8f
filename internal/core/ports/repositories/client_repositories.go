package repositories

import (
	"context"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// ClientReader defines read operations for client data.
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	// ListClients retrieves a paginated list of clients using token pagination.
	ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
