package handlers

import (
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// CategoryHTTPHandler is a type alias for brevity.
type CategoryHTTPHandler = CatalogHandler[
	*category.Category,
	dto.CreateCategoryRequest,
	dto.UpdateCategoryRequest,
]

// NewCategoryHandler creates a configured generic handler for categories.
func NewCategoryHandler(
	base *BaseHandler,
	service *category.Service,
) *CategoryHTTPHandler {

	config := CatalogHandlerConfig[
		*category.Category,
		dto.CreateCategoryRequest,
		dto.UpdateCategoryRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "category",

		MapCreateDTO: func(req dto.CreateCategoryRequest, tenantID tenant.ID) (*category.Category, error) {
			return req.ToEntity(tenantID), nil
		},

		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *category.Category) any {
			return dto.FromCategory(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
