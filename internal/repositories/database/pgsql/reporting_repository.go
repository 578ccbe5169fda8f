package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
)

// PgxReportingRepository reads stage activity and maintains the derived
// weekly_reports rows. Aggregation rows scan straight into domain values.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetStageActivity returns applications active in [weekStart, weekEnd) that
// have reached the given stage: either the stage carries a decision row, or
// the workflow pointer currently sits on it.
func (r *PgxReportingRepository) GetStageActivity(ctx context.Context, role domain.Stage, weekStart, weekEnd time.Time) ([]domain.StageActivityRow, error) {
	query := `
		SELECT a.application_id, a.loan_amount, d.approved
		FROM loan_applications a
		JOIN workflows w ON w.loan_application_id = a.application_id
		LEFT JOIN workflow_stage_decisions d ON d.workflow_id = w.workflow_id AND d.stage = $1
		WHERE a.last_updated_at >= $2 AND a.last_updated_at < $3
		  AND (d.decided_at IS NOT NULL OR w.current_stage = $1);
	`
	rows, err := r.Pool.Query(ctx, query, string(role), weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage activity for role %s: %w", role, err)
	}
	defer rows.Close()

	var activity []domain.StageActivityRow
	for rows.Next() {
		var row domain.StageActivityRow
		if err := rows.Scan(&row.ApplicationID, &row.LoanAmount, &row.Approved); err != nil {
			return nil, fmt.Errorf("failed to scan stage activity row: %w", err)
		}
		activity = append(activity, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stage activity: %w", err)
	}
	return activity, nil
}

// UpsertWeeklyReport inserts or replaces the aggregate keyed by
// (week_start, role). The original report_id survives regeneration.
func (r *PgxReportingRepository) UpsertWeeklyReport(ctx context.Context, report domain.WeeklyReport) error {
	query := `
		INSERT INTO weekly_reports (
			report_id, week_start, week_end, role,
			total_count, approved_count, rejected_count, pending_count,
			total_amount, approved_amount, approval_rate, generated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (week_start, role) DO UPDATE SET
			week_end = EXCLUDED.week_end,
			total_count = EXCLUDED.total_count,
			approved_count = EXCLUDED.approved_count,
			rejected_count = EXCLUDED.rejected_count,
			pending_count = EXCLUDED.pending_count,
			total_amount = EXCLUDED.total_amount,
			approved_amount = EXCLUDED.approved_amount,
			approval_rate = EXCLUDED.approval_rate,
			generated_at = EXCLUDED.generated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		report.ReportID,
		report.WeekStart,
		report.WeekEnd,
		string(report.Role),
		report.TotalCount,
		report.ApprovedCount,
		report.RejectedCount,
		report.PendingCount,
		report.TotalAmount,
		report.ApprovedAmount,
		report.ApprovalRate,
		report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly report for role %s: %w", report.Role, err)
	}
	return nil
}

func (r *PgxReportingRepository) ListWeeklyReports(ctx context.Context, weekStart time.Time) ([]domain.WeeklyReport, error) {
	query := `
		SELECT report_id, week_start, week_end, role,
			total_count, approved_count, rejected_count, pending_count,
			total_amount, approved_amount, approval_rate, generated_at
		FROM weekly_reports
		WHERE week_start = $1
		ORDER BY role;
	`
	rows, err := r.Pool.Query(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.WeeklyReport
	for rows.Next() {
		var report domain.WeeklyReport
		var role string
		if err := rows.Scan(
			&report.ReportID,
			&report.WeekStart,
			&report.WeekEnd,
			&role,
			&report.TotalCount,
			&report.ApprovedCount,
			&report.RejectedCount,
			&report.PendingCount,
			&report.TotalAmount,
			&report.ApprovedAmount,
			&report.ApprovalRate,
			&report.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly report: %w", err)
		}
		report.Role = domain.Stage(role)
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weekly reports: %w", err)
	}
	return reports, nil
}
