package handlers

import (
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/employee"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// EmployeeHTTPHandler is a type alias for brevity.
type EmployeeHTTPHandler = CatalogHandler[
	*employee.Employee,
	dto.CreateEmployeeRequest,
	dto.UpdateEmployeeRequest,
]

// NewEmployeeHandler creates a configured generic handler for employees.
func NewEmployeeHandler(
	base *BaseHandler,
	service *employee.Service,
) *EmployeeHTTPHandler {

	config := CatalogHandlerConfig[
		*employee.Employee,
		dto.CreateEmployeeRequest,
		dto.UpdateEmployeeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "employee",

		MapCreateDTO: func(req dto.CreateEmployeeRequest, tenantID tenant.ID) (*employee.Employee, error) {
			return req.ToEntity(tenantID), nil
		},

		MapUpdateDTO: func(req dto.UpdateEmployeeRequest, existing *employee.Employee) (*employee.Employee, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *employee.Employee) any {
			return dto.FromEmployee(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
