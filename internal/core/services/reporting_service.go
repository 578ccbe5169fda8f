package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/usawacapital/loan_origination_app/internal/core/domain"
	portsrepo "github.com/usawacapital/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/usawacapital/loan_origination_app/internal/core/ports/services"
)

// reportingService implements ReportingSvcFacade. The weekly aggregates are
// derived rows: regenerating them over unchanged data reproduces the same
// numbers, so the trigger is safe to re-run.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service instance.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// weekWindow returns the Monday 00:00 UTC start and the exclusive end of the
// week containing t.
func weekWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysSinceMonday)
	return start, start.AddDate(0, 0, 7)
}

// GenerateWeeklyReports recomputes and upserts the aggregates for the week
// containing asOf, one row per reporting role.
func (s *reportingService) GenerateWeeklyReports(ctx context.Context, asOf time.Time) ([]domain.WeeklyReport, error) {
	weekStart, weekEnd := weekWindow(asOf)
	generatedAt := time.Now()

	reports := make([]domain.WeeklyReport, 0, len(domain.ReportingStages()))
	for _, role := range domain.ReportingStages() {
		rows, err := s.reportingRepo.GetStageActivity(ctx, role, weekStart, weekEnd)
		if err != nil {
			s.LogError(ctx, err, "Failed to read stage activity for weekly report",
				slog.String("role", string(role)),
				slog.String("week_start", weekStart.Format(time.DateOnly)))
			return nil, fmt.Errorf("failed to read stage activity for %s: %w", role, err)
		}

		report := aggregateWeek(rows, weekStart, weekEnd, role, generatedAt)
		if err := s.reportingRepo.UpsertWeeklyReport(ctx, report); err != nil {
			s.LogError(ctx, err, "Failed to upsert weekly report",
				slog.String("role", string(role)),
				slog.String("week_start", weekStart.Format(time.DateOnly)))
			return nil, fmt.Errorf("failed to upsert weekly report for %s: %w", role, err)
		}
		reports = append(reports, report)
	}

	s.LogInfo(ctx, "Weekly reports generated",
		slog.String("week_start", weekStart.Format(time.DateOnly)),
		slog.Int("roles", len(reports)))
	return reports, nil
}

// aggregateWeek folds stage activity rows into one derived aggregate.
func aggregateWeek(rows []domain.StageActivityRow, weekStart, weekEnd time.Time, role domain.Stage, generatedAt time.Time) domain.WeeklyReport {
	report := domain.WeeklyReport{
		ReportID:       uuid.NewString(),
		WeekStart:      weekStart,
		WeekEnd:        weekEnd.AddDate(0, 0, -1),
		Role:           role,
		TotalAmount:    decimal.Zero,
		ApprovedAmount: decimal.Zero,
		GeneratedAt:    generatedAt,
	}
	for _, row := range rows {
		report.TotalCount++
		report.TotalAmount = report.TotalAmount.Add(row.LoanAmount)
		switch {
		case row.Approved == nil:
			report.PendingCount++
		case *row.Approved:
			report.ApprovedCount++
			report.ApprovedAmount = report.ApprovedAmount.Add(row.LoanAmount)
		default:
			report.RejectedCount++
		}
	}
	if report.TotalCount > 0 {
		report.ApprovalRate = int(math.Round(float64(report.ApprovedCount) / float64(report.TotalCount) * 100))
	}
	return report
}

// GetWeeklyReports returns the stored aggregates for the week containing asOf.
func (s *reportingService) GetWeeklyReports(ctx context.Context, asOf time.Time) ([]domain.WeeklyReport, error) {
	weekStart, _ := weekWindow(asOf)
	reports, err := s.reportingRepo.ListWeeklyReports(ctx, weekStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to list weekly reports",
			slog.String("week_start", weekStart.Format(time.DateOnly)))
		return nil, err
	}
	if reports == nil {
		return []domain.WeeklyReport{}, nil
	}
	return reports, nil
}
