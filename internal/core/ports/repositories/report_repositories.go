package repositories

import (
	"context"
	"time"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// ReportingRepository reads stage activity and upserts derived weekly rows.
type ReportingRepository interface {
	// GetStageActivity returns, for one reporting role, every application whose
	// last update falls inside [weekStart, weekEnd) and whose workflow has
	// reached that role's stage, with the stage's decision flag.
	GetStageActivity(ctx context.Context, role domain.Stage, weekStart, weekEnd time.Time) ([]domain.StageActivityRow, error)

	// UpsertWeeklyReport inserts or replaces the aggregate keyed by
	// (week_start, role). Safe to re-run.
	UpsertWeeklyReport(ctx context.Context, report domain.WeeklyReport) error

	// ListWeeklyReports returns the stored aggregates for a week, all roles.
	ListWeeklyReports(ctx context.Context, weekStart time.Time) ([]domain.WeeklyReport, error)
}
