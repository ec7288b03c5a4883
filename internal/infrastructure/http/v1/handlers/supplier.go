package handlers

import (
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// SupplierHTTPHandler is a type alias for brevity.
type SupplierHTTPHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler creates a configured generic handler for suppliers.
func NewSupplierHandler(
	base *BaseHandler,
	service *supplier.Service,
) *SupplierHTTPHandler {

	config := CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "supplier",

		MapCreateDTO: func(req dto.CreateSupplierRequest, tenantID tenant.ID) (*supplier.Supplier, error) {
			return req.ToEntity(tenantID), nil
		},

		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) (*supplier.Supplier, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *supplier.Supplier) any {
			return dto.FromSupplier(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
