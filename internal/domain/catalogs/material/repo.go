package material

import (
	"context"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain"
)

// Repository defines the interface for Material persistence.
type Repository interface {
	domain.CatalogRepository[*Material]

	// ListWithCategory retrieves materials joined with their category name.
	ListWithCategory(ctx context.Context, tenantID tenant.ID, filter domain.ListFilter) (domain.ListResult[*WithCategory], error)

	// AdjustBalance changes current_stock by delta as a single in-place
	// arithmetic update (stock = stock + delta), guarded against going
	// negative. Returns not-found when the row is absent in the tenant
	// scope and insufficient-stock when the delta would underflow.
	AdjustBalance(ctx context.Context, tenantID tenant.ID, materialID id.ID, delta int64) error

	// LockForMovement loads the referenced materials FOR UPDATE within the
	// current transaction, ordered by id to keep lock acquisition stable.
	LockForMovement(ctx context.Context, tenantID tenant.ID, ids []id.ID) ([]*Material, error)
}
