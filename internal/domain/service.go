// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/tx"
	"stockroom/pkg/logger"
)

// CatalogService provides business logic for catalog entities.
// The tenant id is threaded through every call; the service stamps it onto
// created entities and passes it down to the repository unchanged.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but map not-found to the entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Create creates a new catalog entity within the tenant scope.
func (s *CatalogService[T]) Create(ctx context.Context, tenantID tenant.ID, ent T) error {
	if id.IsNil(tenantID) {
		return apperror.NewUnauthorized("tenant scope not resolved")
	}

	// Stamp ownership before anything is validated or written.
	if scoped, ok := any(ent).(entity.TenantScoped); ok {
		scoped.SetTenantID(tenantID)
	}

	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, tenantID, ent); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterCreate, ent); err != nil {
		// Entity is already created; hook failures are logged, not surfaced.
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// GetByID retrieves entity by ID within the tenant scope.
func (s *CatalogService[T]) GetByID(ctx context.Context, tenantID tenant.ID, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, tenantID, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID.String())
	}
	return ent, nil
}

// Update updates an existing entity within the tenant scope.
func (s *CatalogService[T]) Update(ctx context.Context, tenantID tenant.ID, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, tenantID, ent); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, ent); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// Delete removes the entity. Hard delete; the repository reports a conflict
// when the row is still referenced (e.g. a material with movement items).
func (s *CatalogService[T]) Delete(ctx context.Context, tenantID tenant.ID, entityID id.ID) error {
	// Load first so before-delete hooks see the full entity.
	ent, err := s.repo.GetByID(ctx, tenantID, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, ent); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, tenantID, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, ent); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}

	return nil
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, tenantID tenant.ID, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, tenantID, filter)
}

// Exists checks if entity exists within the tenant scope.
func (s *CatalogService[T]) Exists(ctx context.Context, tenantID tenant.ID, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, tenantID, entityID)
}
