package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/material"
)

// --- Request DTOs ---

// CreateMaterialRequest is the request body for creating a material.
type CreateMaterialRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description"`
	CategoryID   *string         `json:"categoryId" binding:"omitempty,uuid"`
	Unit         string          `json:"unit" binding:"required"`
	CurrentStock int64           `json:"currentStock" binding:"omitempty,min=0"`
	MinimumStock int64           `json:"minimumStock" binding:"omitempty,min=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMaterialRequest) ToEntity(tenantID tenant.ID) (*material.Material, error) {
	m := material.NewMaterial(tenantID, r.Name, r.Unit)
	m.Description = r.Description
	m.CurrentStock = r.CurrentStock
	m.MinimumStock = r.MinimumStock
	m.UnitPrice = r.UnitPrice

	if r.CategoryID != nil && *r.CategoryID != "" {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return nil, err
		}
		m.CategoryID = &categoryID
	}
	return m, nil
}

// UpdateMaterialRequest is the request body for updating a material.
// The stock balance is absent on purpose: it only moves through the ledger.
type UpdateMaterialRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  *string         `json:"description"`
	CategoryID   *string         `json:"categoryId" binding:"omitempty,uuid"`
	Unit         string          `json:"unit" binding:"required"`
	MinimumStock int64           `json:"minimumStock" binding:"omitempty,min=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Version      int             `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMaterialRequest) ApplyTo(m *material.Material) error {
	m.Name = r.Name
	m.Description = r.Description
	m.Unit = r.Unit
	m.MinimumStock = r.MinimumStock
	m.UnitPrice = r.UnitPrice
	m.Version = r.Version

	m.CategoryID = nil
	if r.CategoryID != nil && *r.CategoryID != "" {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return err
		}
		m.CategoryID = &categoryID
	}
	return nil
}

// --- Response DTOs ---

// MaterialResponse is the response body for a material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Unit         string          `json:"unit"`
	CurrentStock int64           `json:"currentStock"`
	MinimumStock int64           `json:"minimumStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	StockStatus  string          `json:"stockStatus"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromMaterial creates response DTO from domain entity.
func FromMaterial(m *material.Material) *MaterialResponse {
	resp := &MaterialResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Description:  m.Description,
		Unit:         m.Unit,
		CurrentStock: m.CurrentStock,
		MinimumStock: m.MinimumStock,
		UnitPrice:    m.UnitPrice,
		StockStatus:  string(m.StockStatus()),
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.CategoryID != nil {
		s := m.CategoryID.String()
		resp.CategoryID = &s
	}
	return resp
}

// FromMaterialWithCategory creates response DTO from the joined read model.
func FromMaterialWithCategory(m *material.WithCategory) *MaterialResponse {
	resp := FromMaterial(&m.Material)
	resp.CategoryName = m.CategoryName
	return resp
}
