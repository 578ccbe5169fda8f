package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usawacapital/loan_origination_app/internal/apperrors"
	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
)

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryFacade
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const transferColumns = `transfer_id, client_id, application_id, amount, currency_code, direction, status,
		reference, failure_reason, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		transfer.TransferID,
		transfer.ClientID,
		transfer.ApplicationID,
		transfer.Amount,
		transfer.CurrencyCode,
		transfer.Direction,
		string(transfer.Status),
		transfer.Reference,
		transfer.FailureReason,
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE transfer_id = $1;
	`
	t, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return t, nil
}

func (r *PgxTransferRepository) ListTransfersByClient(ctx context.Context, clientID string) ([]domain.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE client_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers for client %s: %w", clientID, err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transfers: %w", err)
	}
	return transfers, nil
}

// SettleTransfer finalizes a PENDING transfer. The status predicate makes a
// double settlement affect zero rows, which is reported as ErrConflict.
func (r *PgxTransferRepository) SettleTransfer(ctx context.Context, transferID string, status domain.TransferStatus, failureReason *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transfers
		SET status = $1, failure_reason = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transfer_id = $5 AND status = $6;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), failureReason, updatedAt, updatedBy, transferID, string(domain.TransferPending))
	if err != nil {
		return fmt.Errorf("failed to settle transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the transfer does not exist or it has already been settled.
		if _, findErr := r.FindTransferByID(ctx, transferID); findErr != nil {
			return findErr
		}
		return apperrors.ErrConflict
	}
	return nil
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var t domain.Transfer
	var status string
	err := row.Scan(
		&t.TransferID,
		&t.ClientID,
		&t.ApplicationID,
		&t.Amount,
		&t.CurrencyCode,
		&t.Direction,
		&status,
		&t.Reference,
		&t.FailureReason,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TransferStatus(status)
	return &t, nil
}
