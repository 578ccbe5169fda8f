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
	"github.com/usawacapital/loan_origination_app/internal/models"
	"github.com/usawacapital/loan_origination_app/internal/utils/mapping"
	"github.com/usawacapital/loan_origination_app/internal/utils/pagination"
)

type PgxApplicationRepository struct {
	BaseRepository
}

func newPgxApplicationRepository(pool *pgxpool.Pool) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxApplicationRepository implements portsrepo.ApplicationRepositoryFacade
var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

const applicationColumns = `application_id, client_id, client_name, loan_amount, loan_type, purpose,
		monthly_income, employment_status, contact_phone, national_id, status,
		rejection_reason, downsizing_reason, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, application domain.LoanApplication) error {
	m := mapping.ToModelLoanApplication(application)
	query := `
		INSERT INTO loan_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ApplicationID,
		m.ClientID,
		m.ClientName,
		m.LoanAmount,
		m.LoanType,
		m.Purpose,
		m.MonthlyIncome,
		m.EmploymentStatus,
		m.ContactPhone,
		m.NationalID,
		m.Status,
		m.RejectionReason,
		m.DownsizingReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save application %s: %w", m.ApplicationID, err)
	}
	return nil
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM loan_applications
		WHERE application_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query application %s: %w", applicationID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.LoanApplication])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan application %s: %w", applicationID, err)
	}

	app := mapping.ToDomainLoanApplication(m)
	return &app, nil
}

// ListApplications pages by (created_at DESC, application_id DESC) keyset
// cursor, optionally filtered by status.
func (r *PgxApplicationRepository) ListApplications(ctx context.Context, limit int, nextToken *string, status *domain.ApplicationStatus) ([]domain.LoanApplication, *string, error) {
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
		SELECT ` + applicationColumns + `
		FROM loan_applications
		WHERE 1=1`
	args := []any{}
	argPos := 1
	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}
	if hasCursor {
		query += fmt.Sprintf(" AND (created_at, application_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, cursorTime, cursorID)
		argPos += 2
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, application_id DESC LIMIT $%d", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query applications: %w", err)
	}
	modelApps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LoanApplication])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan applications: %w", err)
	}

	var token *string
	if len(modelApps) > limit {
		modelApps = modelApps[:limit]
		last := modelApps[len(modelApps)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.ApplicationID)
		token = &t
	}

	return mapping.ToDomainLoanApplicationSlice(modelApps), token, nil
}
