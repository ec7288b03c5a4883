package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/material"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// MaterialHandler extends the generic catalog handler with the
// category-joined listing.
type MaterialHandler struct {
	*CatalogHandler[*material.Material, dto.CreateMaterialRequest, dto.UpdateMaterialRequest]
	service *material.Service
}

// NewMaterialHandler creates a configured handler for materials.
func NewMaterialHandler(
	base *BaseHandler,
	service *material.Service,
) *MaterialHandler {

	config := CatalogHandlerConfig[
		*material.Material,
		dto.CreateMaterialRequest,
		dto.UpdateMaterialRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "material",

		MapCreateDTO: func(req dto.CreateMaterialRequest, tenantID tenant.ID) (*material.Material, error) {
			return req.ToEntity(tenantID)
		},

		MapUpdateDTO: func(req dto.UpdateMaterialRequest, existing *material.Material) (*material.Material, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *material.Material) any {
			return dto.FromMaterial(entity)
		},
	}

	return &MaterialHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListWithCategory handles GET /materials/with-category - list materials
// joined with their category names.
func (h *MaterialHandler) ListWithCategory(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.ListWithCategory(ctx, tenantID, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromMaterialWithCategory(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
