package entity

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tenant"
)

// Catalog is the base type for reference data: categories, suppliers,
// employees, third parties, materials.
type Catalog struct {
	BaseEntity

	// Name is the display name (required)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID for the tenant.
func NewCatalog(tenantID tenant.ID, name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(tenantID),
		Name:       name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
