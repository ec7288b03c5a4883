// Package reports provides the aggregation engine: dashboard metrics and
// the financial valuation report, derived on demand from current state.
package reports

import (
	"time"

	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/material"
)

// HighValueThreshold is the total-value cutoff above which a material
// counts as high-value in the financial report.
var HighValueThreshold = types.MustMoney("1000")

// DashboardMetrics is the per-tenant dashboard summary.
type DashboardMetrics struct {
	TotalMaterials int64 `json:"totalMaterials"`

	// Movement counts within the current reporting day
	EntriesToday int64 `json:"entriesToday"`
	ExitsToday   int64 `json:"exitsToday"`

	// Materials with current_stock <= minimum_stock
	CriticalItems int64 `json:"criticalItems"`
}

// FinancialReportItem is one material's valuation row.
type FinancialReportItem struct {
	MaterialID   id.ID                `json:"materialId"`
	MaterialName string               `json:"materialName"`
	CategoryName *string              `json:"categoryName,omitempty"`
	Unit         string               `json:"unit"`
	CurrentStock int64                `json:"currentStock"`
	UnitPrice    types.Money          `json:"unitPrice"`
	TotalValue   types.Money          `json:"totalValue"`
	StockStatus  material.StockStatus `json:"stockStatus"`
}

// FinancialReport is the full per-tenant valuation.
type FinancialReport struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Items       []FinancialReportItem `json:"items"`

	TotalStockValue types.Money `json:"totalStockValue"`
	TotalItems      int         `json:"totalItems"`
	HighValueItems  int         `json:"highValueItems"`
}
