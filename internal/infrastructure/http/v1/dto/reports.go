package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/domain/reports"
)

// --- Response DTOs ---

// DashboardResponse is the dashboard summary payload.
type DashboardResponse struct {
	TotalMaterials int64 `json:"totalMaterials"`
	EntriesToday   int64 `json:"entriesToday"`
	ExitsToday     int64 `json:"exitsToday"`
	CriticalItems  int64 `json:"criticalItems"`
}

// FromDashboardMetrics creates response DTO from domain metrics.
func FromDashboardMetrics(m *reports.DashboardMetrics) *DashboardResponse {
	return &DashboardResponse{
		TotalMaterials: m.TotalMaterials,
		EntriesToday:   m.EntriesToday,
		ExitsToday:     m.ExitsToday,
		CriticalItems:  m.CriticalItems,
	}
}

// FinancialReportItemResponse is one valuation row.
type FinancialReportItemResponse struct {
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Unit         string          `json:"unit"`
	CurrentStock int64           `json:"currentStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	StockStatus  string          `json:"stockStatus"`
}

// FinancialReportResponse is the full valuation payload.
type FinancialReportResponse struct {
	GeneratedAt     time.Time                     `json:"generatedAt"`
	Items           []FinancialReportItemResponse `json:"items"`
	TotalStockValue decimal.Decimal               `json:"totalStockValue"`
	TotalItems      int                           `json:"totalItems"`
	HighValueItems  int                           `json:"highValueItems"`
}

// FromFinancialReport creates response DTO from the domain report.
func FromFinancialReport(r *reports.FinancialReport) *FinancialReportResponse {
	resp := &FinancialReportResponse{
		GeneratedAt:     r.GeneratedAt,
		Items:           make([]FinancialReportItemResponse, 0, len(r.Items)),
		TotalStockValue: r.TotalStockValue,
		TotalItems:      r.TotalItems,
		HighValueItems:  r.HighValueItems,
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, FinancialReportItemResponse{
			MaterialID:   item.MaterialID.String(),
			MaterialName: item.MaterialName,
			CategoryName: item.CategoryName,
			Unit:         item.Unit,
			CurrentStock: item.CurrentStock,
			UnitPrice:    item.UnitPrice,
			TotalValue:   item.TotalValue,
			StockStatus:  string(item.StockStatus),
		})
	}
	return resp
}
