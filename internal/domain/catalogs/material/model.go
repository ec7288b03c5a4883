// Package material provides the Material catalog.
// Materials carry the stock balance the movement ledger adjusts; the
// balance itself is only ever changed through Repository.AdjustBalance.
package material

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/types"
)

// StockStatus is the derived stock-health classification.
type StockStatus string

const (
	StatusCritical StockStatus = "critical" // current_stock <= minimum_stock
	StatusLow      StockStatus = "low"      // current_stock <= minimum_stock * 1.2
	StatusAdequate StockStatus = "adequate"
)

// Material represents a stock-keeping item.
type Material struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// CategoryID is an optional classifier reference
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// Unit is the unit-of-measure label (e.g. "un", "kg", "cx")
	Unit string `db:"unit" json:"unit"`

	// CurrentStock is the live balance in whole units. Mutated only by
	// the ledger through AdjustBalance, never by catalog edits.
	CurrentStock int64 `db:"current_stock" json:"currentStock"`

	// MinimumStock is the criticality threshold
	MinimumStock int64 `db:"minimum_stock" json:"minimumStock"`

	// UnitPrice is the reference price used by the financial report
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// NewMaterial creates a new Material with required fields.
func NewMaterial(tenantID tenant.ID, name, unit string) *Material {
	return &Material{
		Catalog: entity.NewCatalog(tenantID, name),
		Unit:    unit,
	}
}

// Validate implements entity.Validatable interface.
func (m *Material) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if m.CurrentStock < 0 {
		return apperror.NewValidation("current stock cannot be negative").
			WithDetail("field", "currentStock")
	}
	if m.MinimumStock < 0 {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minimumStock")
	}
	if m.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}

	return nil
}

// StockStatus classifies the current balance against the minimum.
// The 1.2 factor is computed in integers to keep boundary cases exact.
func (m *Material) StockStatus() StockStatus {
	return ClassifyStock(m.CurrentStock, m.MinimumStock)
}

// TotalValue is the material's contribution to the financial report:
// unit_price × current_stock.
func (m *Material) TotalValue() types.Money {
	return types.LineTotal(m.UnitPrice, m.CurrentStock)
}

// ClassifyStock is the pure classification function over the two stored
// fields. Recomputed on every read, never persisted.
func ClassifyStock(currentStock, minimumStock int64) StockStatus {
	if currentStock <= minimumStock {
		return StatusCritical
	}
	if currentStock*10 <= minimumStock*12 {
		return StatusLow
	}
	return StatusAdequate
}

// WithCategory is a Material joined with its (possibly absent) category.
type WithCategory struct {
	Material

	CategoryName *string `db:"category_name" json:"categoryName,omitempty"`
}
