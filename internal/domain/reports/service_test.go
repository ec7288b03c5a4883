package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
)

type fakeReportRepo struct {
	metrics *DashboardMetrics
	report  *FinancialReport

	gotDayStart time.Time
	gotDayEnd   time.Time
	calls       int
}

func (f *fakeReportRepo) GetDashboardMetrics(ctx context.Context, tenantID tenant.ID, dayStart, dayEnd time.Time) (*DashboardMetrics, error) {
	f.gotDayStart = dayStart
	f.gotDayEnd = dayEnd
	f.calls++
	return f.metrics, nil
}

func (f *fakeReportRepo) GetFinancialReport(ctx context.Context, tenantID tenant.ID) (*FinancialReport, error) {
	f.calls++
	return f.report, nil
}

func TestDashboardMetricsDayBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	repo := &fakeReportRepo{metrics: &DashboardMetrics{TotalMaterials: 3}}
	svc := NewService(repo, loc)
	// 2026-08-29 01:30 UTC is still 2026-08-28 in São Paulo (UTC-3).
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 1, 30, 0, 0, time.UTC)
	}

	_, err = svc.DashboardMetrics(context.Background(), id.New())
	require.NoError(t, err)

	wantStart := time.Date(2026, 8, 28, 0, 0, 0, 0, loc)
	require.True(t, repo.gotDayStart.Equal(wantStart), "dayStart = %v, want %v", repo.gotDayStart, wantStart)
	require.True(t, repo.gotDayEnd.Equal(wantStart.AddDate(0, 0, 1)), "dayEnd = %v", repo.gotDayEnd)
}

func TestDashboardMetricsRepeatedCallsAreIdentical(t *testing.T) {
	repo := &fakeReportRepo{metrics: &DashboardMetrics{
		TotalMaterials: 12,
		EntriesToday:   2,
		ExitsToday:     5,
		CriticalItems:  1,
	}}
	svc := NewService(repo, time.UTC)

	first, err := svc.DashboardMetrics(context.Background(), id.New())
	require.NoError(t, err)
	second, err := svc.DashboardMetrics(context.Background(), id.New())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 2, repo.calls)
}

func TestReportsFailClosedWithoutTenant(t *testing.T) {
	svc := NewService(&fakeReportRepo{}, time.UTC)

	_, err := svc.DashboardMetrics(context.Background(), id.Nil())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	_, err = svc.FinancialReport(context.Background(), id.Nil())
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestFinancialReportStampsGeneratedAt(t *testing.T) {
	repo := &fakeReportRepo{report: &FinancialReport{TotalItems: 2}}
	svc := NewService(repo, time.UTC)
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	report, err := svc.FinancialReport(context.Background(), id.New())
	require.NoError(t, err)
	require.True(t, report.GeneratedAt.Equal(fixed))
}
