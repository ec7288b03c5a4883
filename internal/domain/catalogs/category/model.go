// Package category provides the material category catalog.
package category

import (
	"context"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/tenant"
)

// Category classifies materials. A material's category reference is optional.
type Category struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(tenantID tenant.ID, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(tenantID, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
