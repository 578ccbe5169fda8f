package services

import (
	"context"
	"time"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
)

// ReportingSvcFacade generates and reads the derived weekly aggregates.
type ReportingSvcFacade interface {
	// GenerateWeeklyReports recomputes and upserts the aggregates for the
	// Monday–Sunday week containing asOf, one row per reporting role.
	// Idempotent: re-running over unchanged data reproduces the same numbers.
	GenerateWeeklyReports(ctx context.Context, asOf time.Time) ([]domain.WeeklyReport, error)

	// GetWeeklyReports returns the stored aggregates for the week containing asOf.
	GetWeeklyReports(ctx context.Context, asOf time.Time) ([]domain.WeeklyReport, error)
}
