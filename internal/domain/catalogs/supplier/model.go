// Package supplier provides the Supplier catalog.
// Suppliers are the counterparties of stock entries.
package supplier

import (
	"context"
	"regexp"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/tenant"
)

// Pre-compiled regex patterns for validation
var (
	nonDigitRE = regexp.MustCompile(`\D`)
	emailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Supplier represents a goods supplier.
type Supplier struct {
	entity.Catalog

	// CNPJ is the supplier's company registration number (14 digits)
	CNPJ *string `db:"cnpj" json:"cnpj,omitempty"`

	// Contact fields
	Email   *string `db:"email" json:"email,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(tenantID tenant.ID, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(tenantID, name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.CNPJ != nil && *s.CNPJ != "" {
		digits := nonDigitRE.ReplaceAllString(*s.CNPJ, "")
		if len(digits) != 14 {
			return apperror.NewValidation("CNPJ must contain 14 digits").
				WithDetail("field", "cnpj")
		}
	}

	if s.Email != nil && *s.Email != "" && !emailRE.MatchString(*s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
