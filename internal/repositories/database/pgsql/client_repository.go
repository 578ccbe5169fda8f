package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	"github.com/usawacapital/loan_origination_app/internal/utils/pagination"
)

// PgxClientRepository persists borrowing clients. The domain struct maps
// one-to-one onto the table so rows scan straight into domain values.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, full_name, email, phone, national_id, address, occupation, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.FullName,
		client.Email,
		client.Phone,
		client.NationalID,
		client.Address,
		client.Occupation,
		client.IsActive,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on national_id
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE client_id = $1;
	`
	var c domain.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&c.ClientID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.NationalID,
		&c.Address,
		&c.Occupation,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	return &c, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var cursorTime time.Time
	var cursorID string
	hasCursor := false
	if nextToken != nil && *nextToken != "" {
		var err error
		cursorTime, cursorID, err = pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid pagination token")
		}
		hasCursor = true
	}

	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE is_active = TRUE`
	args := []any{}
	if hasCursor {
		query += ` AND (created_at, client_id) < ($1, $2)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, client_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.ClientID,
			&c.FullName,
			&c.Email,
			&c.Phone,
			&c.NationalID,
			&c.Address,
			&c.Occupation,
			&c.IsActive,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read clients: %w", err)
	}

	var token *string
	if len(clients) > limit {
		clients = clients[:limit]
		last := clients[len(clients)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.ClientID)
		token = &t
	}
	return clients, token, nil
}
