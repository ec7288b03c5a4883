// Package report_repo provides the PostgreSQL implementation of the
// aggregation queries. Everything is computed from current state at
// query time; nothing is cached or materialized.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/material"
	"stockroom/internal/domain/reports"
	"stockroom/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetDashboardMetrics counts materials, critical items, and today's
// movements in a single round-trip.
func (r *ReportRepo) GetDashboardMetrics(ctx context.Context, tenantID tenant.ID, dayStart, dayEnd time.Time) (*reports.DashboardMetrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM cat_materials
			 WHERE tenant_id = $1) AS total_materials,
			(SELECT COUNT(*) FROM cat_materials
			 WHERE tenant_id = $1 AND current_stock <= minimum_stock) AS critical_items,
			(SELECT COUNT(*) FROM mov_movements
			 WHERE tenant_id = $1 AND direction = 'entry'
			   AND date >= $2 AND date < $3) AS entries_today,
			(SELECT COUNT(*) FROM mov_movements
			 WHERE tenant_id = $1 AND direction = 'exit'
			   AND date >= $2 AND date < $3) AS exits_today
	`

	var m reports.DashboardMetrics
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, query, tenantID, dayStart, dayEnd).Scan(
		&m.TotalMaterials, &m.CriticalItems, &m.EntriesToday, &m.ExitsToday,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}

	return &m, nil
}

// financialRow is the scan target for the valuation query.
type financialRow struct {
	MaterialID   id.ID           `db:"material_id"`
	MaterialName string          `db:"material_name"`
	CategoryName *string         `db:"category_name"`
	Unit         string          `db:"unit"`
	CurrentStock int64           `db:"current_stock"`
	MinimumStock int64           `db:"minimum_stock"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	TotalValue   decimal.Decimal `db:"total_value"`
}

// GetFinancialReport values every material at unit_price * current_stock,
// joined with its category. Totals and classification are computed in Go
// to keep the status thresholds in one place.
func (r *ReportRepo) GetFinancialReport(ctx context.Context, tenantID tenant.ID) (*reports.FinancialReport, error) {
	query := `
		SELECT
			m.id AS material_id,
			m.name AS material_name,
			c.name AS category_name,
			m.unit,
			m.current_stock,
			m.minimum_stock,
			m.unit_price,
			m.unit_price * m.current_stock AS total_value
		FROM cat_materials m
		LEFT JOIN cat_categories c ON c.id = m.category_id AND c.tenant_id = m.tenant_id
		WHERE m.tenant_id = $1
		ORDER BY m.name
	`

	var rows []financialRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("financial report: %w", err)
	}

	report := &reports.FinancialReport{
		Items:           make([]reports.FinancialReportItem, 0, len(rows)),
		TotalStockValue: decimal.Zero,
	}

	for _, row := range rows {
		item := reports.FinancialReportItem{
			MaterialID:   row.MaterialID,
			MaterialName: row.MaterialName,
			CategoryName: row.CategoryName,
			Unit:         row.Unit,
			CurrentStock: row.CurrentStock,
			UnitPrice:    row.UnitPrice,
			TotalValue:   row.TotalValue,
			StockStatus:  material.ClassifyStock(row.CurrentStock, row.MinimumStock),
		}

		report.Items = append(report.Items, item)
		report.TotalStockValue = report.TotalStockValue.Add(row.TotalValue)
		if row.TotalValue.GreaterThan(reports.HighValueThreshold) {
			report.HighValueItems++
		}
	}
	report.TotalItems = len(report.Items)

	return report, nil
}
