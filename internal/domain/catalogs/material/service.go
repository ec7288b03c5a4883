package material

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/category"
)

// Service provides business logic for the Material catalog.
type Service struct {
	*domain.CatalogService[*Material]
	repo       Repository
	categories category.Repository
}

// NewService creates a new Material service.
func NewService(repo Repository, categories category.Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Material]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "material",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
	}

	base.Hooks().OnBeforeCreate(svc.checkCategory)
	base.Hooks().OnBeforeUpdate(svc.checkCategory)

	return svc
}

// checkCategory verifies the optional category reference stays inside the
// material's own tenant.
func (s *Service) checkCategory(ctx context.Context, m *Material) error {
	if m.CategoryID == nil || id.IsNil(*m.CategoryID) {
		return nil
	}

	exists, err := s.categories.Exists(ctx, m.GetTenantID(), *m.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("category", m.CategoryID.String())
	}
	return nil
}

// ListWithCategory retrieves materials joined with their category name.
func (s *Service) ListWithCategory(ctx context.Context, tenantID tenant.ID, filter domain.ListFilter) (domain.ListResult[*WithCategory], error) {
	return s.repo.ListWithCategory(ctx, tenantID, filter)
}

// AdjustBalance changes a material's balance by delta. Exposed for the
// movement ledger; catalog callers must not use it directly.
func (s *Service) AdjustBalance(ctx context.Context, tenantID tenant.ID, materialID id.ID, delta int64) error {
	return s.repo.AdjustBalance(ctx, tenantID, materialID, delta)
}
