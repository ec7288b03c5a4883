package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/ledger"
	"stockroom/internal/infrastructure/http/v1/dto"
	"stockroom/internal/infrastructure/storage/postgres"
)

// MovementHistory reads the audit trail of a posted movement.
type MovementHistory interface {
	GetEntityHistory(ctx context.Context, tenantID tenant.ID, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// historyLimit caps the audit records returned per movement.
const historyLimit = 50

// MovementHandler handles the movement ledger endpoints. Movements are
// posted atomically and never updated or deleted afterwards.
type MovementHandler struct {
	*BaseHandler
	service *ledger.Service
	history MovementHistory
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(base *BaseHandler, service *ledger.Service, history MovementHistory) *MovementHandler {
	return &MovementHandler{
		BaseHandler: base,
		service:     service,
		history:     history,
	}
}

// PostEntry handles POST /movements/entries - post a stock entry.
func (h *MovementHandler) PostEntry(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	mv, err := req.ToEntity(tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	posted, err := h.service.Post(ctx, tenantID, mv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovement(posted))
}

// PostExit handles POST /movements/exits - post a stock exit.
func (h *MovementHandler) PostExit(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.CreateExitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	mv, err := req.ToEntity(tenantID)
	if err != nil {
		h.Error(c, err)
		return
	}

	posted, err := h.service.Post(ctx, tenantID, mv)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovement(posted))
}

// Get handles GET /movements/:id - get a movement with its items.
func (h *MovementHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	movementID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	mv, err := h.service.GetByID(ctx, tenantID, movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovement(mv))
}

// History handles GET /movements/:id/history - the audit trail of one
// movement. The movement is loaded first, so a foreign tenant's id reads
// as not found.
func (h *MovementHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}
	movementID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.GetByID(ctx, tenantID, movementID); err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.history.GetEntityHistory(ctx, tenantID, "movement", movementID, historyLimit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAuditEntries(entries))
}

// List handles GET /movements - list movement headers.
func (h *MovementHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, ok := h.TenantID(c)
	if !ok {
		return
	}

	var req dto.ListMovementsRequest
	if !h.BindQuery(c, &req) {
		return
	}
	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, total, err := h.service.List(ctx, tenantID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]any, len(items))
	for i, mv := range items {
		responses[i] = dto.FromMovement(mv)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      responses,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}
