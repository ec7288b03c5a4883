package handlers

import (
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/thirdparty"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// ThirdPartyHTTPHandler is a type alias for brevity.
type ThirdPartyHTTPHandler = CatalogHandler[
	*thirdparty.ThirdParty,
	dto.CreateThirdPartyRequest,
	dto.UpdateThirdPartyRequest,
]

// NewThirdPartyHandler creates a configured generic handler for third parties.
func NewThirdPartyHandler(
	base *BaseHandler,
	service *thirdparty.Service,
) *ThirdPartyHTTPHandler {

	config := CatalogHandlerConfig[
		*thirdparty.ThirdParty,
		dto.CreateThirdPartyRequest,
		dto.UpdateThirdPartyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "third_party",

		MapCreateDTO: func(req dto.CreateThirdPartyRequest, tenantID tenant.ID) (*thirdparty.ThirdParty, error) {
			return req.ToEntity(tenantID), nil
		},

		MapUpdateDTO: func(req dto.UpdateThirdPartyRequest, existing *thirdparty.ThirdParty) (*thirdparty.ThirdParty, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *thirdparty.ThirdParty) any {
			return dto.FromThirdParty(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
