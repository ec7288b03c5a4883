package dto

import (
	"time"

	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/employee"
)

// --- Request DTOs ---

// CreateEmployeeRequest is the request body for creating an employee.
type CreateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Registration *string `json:"registration"`
	Department   *string `json:"department"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateEmployeeRequest) ToEntity(tenantID tenant.ID) *employee.Employee {
	e := employee.NewEmployee(tenantID, r.Name)
	e.Registration = r.Registration
	e.Department = r.Department
	e.Email = r.Email
	e.Phone = r.Phone
	return e
}

// UpdateEmployeeRequest is the request body for updating an employee.
type UpdateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Registration *string `json:"registration"`
	Department   *string `json:"department"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
	Version      int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateEmployeeRequest) ApplyTo(e *employee.Employee) {
	e.Name = r.Name
	e.Registration = r.Registration
	e.Department = r.Department
	e.Email = r.Email
	e.Phone = r.Phone
	if r.Active != nil {
		e.Active = *r.Active
	}
	e.Version = r.Version
}

// --- Response DTOs ---

// EmployeeResponse is the response body for an employee.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Registration *string   `json:"registration,omitempty"`
	Department   *string   `json:"department,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromEmployee creates response DTO from domain entity.
func FromEmployee(e *employee.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		ID:           e.ID.String(),
		Name:         e.Name,
		Registration: e.Registration,
		Department:   e.Department,
		Email:        e.Email,
		Phone:        e.Phone,
		Active:       e.Active,
		Version:      e.Version,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
