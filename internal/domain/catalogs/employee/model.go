// Package employee provides the Employee catalog.
// Employees are the counterparties of stock exits and of return entries.
package employee

import (
	"context"
	"regexp"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/tenant"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Employee represents a staff member that can receive or return materials.
type Employee struct {
	entity.Catalog

	// Registration is the internal badge/registration number
	Registration *string `db:"registration" json:"registration,omitempty"`

	// Department the employee belongs to
	Department *string `db:"department" json:"department,omitempty"`

	Email *string `db:"email" json:"email,omitempty"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Active employees can be referenced by new movements
	Active bool `db:"active" json:"active"`
}

// NewEmployee creates a new active Employee.
func NewEmployee(tenantID tenant.ID, name string) *Employee {
	return &Employee{
		Catalog: entity.NewCatalog(tenantID, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (e *Employee) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}

	if e.Email != nil && *e.Email != "" && !emailRE.MatchString(*e.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
