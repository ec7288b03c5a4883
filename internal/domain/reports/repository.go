package reports

import (
	"context"
	"time"

	"stockroom/internal/core/tenant"
)

// Repository defines report data access. Read-only; both queries reflect
// the latest committed movements at call time, nothing is cached.
type Repository interface {
	// GetDashboardMetrics counts materials, critical items, and entry/exit
	// movements whose date falls within [dayStart, dayEnd).
	GetDashboardMetrics(ctx context.Context, tenantID tenant.ID, dayStart, dayEnd time.Time) (*DashboardMetrics, error)

	// GetFinancialReport values every material at unit_price × current_stock,
	// joined with its category.
	GetFinancialReport(ctx context.Context, tenantID tenant.ID) (*FinancialReport, error)
}
