package reports

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
)

// Service provides report generation operations.
type Service struct {
	repo Repository

	// location fixes the day boundary for "today" metrics
	location *time.Location

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a new reports service. A nil location falls back to
// the host's local zone.
func NewService(repo Repository, location *time.Location) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		repo:     repo,
		location: location,
		now:      time.Now,
	}
}

// DashboardMetrics computes the dashboard counters for the tenant.
// "Today" spans [midnight, next midnight) in the reporting location.
func (s *Service) DashboardMetrics(ctx context.Context, tenantID tenant.ID) (*DashboardMetrics, error) {
	if id.IsNil(tenantID) {
		return nil, apperror.NewUnauthorized("tenant scope not resolved")
	}

	now := s.now().In(s.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	metrics, err := s.repo.GetDashboardMetrics(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("get dashboard metrics: %w", err)
	}
	return metrics, nil
}

// FinancialReport computes the per-material valuation for the tenant.
func (s *Service) FinancialReport(ctx context.Context, tenantID tenant.ID) (*FinancialReport, error) {
	if id.IsNil(tenantID) {
		return nil, apperror.NewUnauthorized("tenant scope not resolved")
	}

	report, err := s.repo.GetFinancialReport(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get financial report: %w", err)
	}
	report.GeneratedAt = s.now().In(s.location)
	return report, nil
}
