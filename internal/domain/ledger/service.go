package ledger

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/numerator"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain/catalogs/material"
	"stockroom/pkg/logger"
)

// Number prefixes per direction.
const (
	prefixEntry = "ENT"
	prefixExit  = "SAI"
)

// ExistenceChecker reports whether a catalog row exists in the tenant
// scope. Satisfied by every catalog repository.
type ExistenceChecker interface {
	Exists(ctx context.Context, tenantID tenant.ID, entityID id.ID) (bool, error)
}

// Counterparties bundles the catalog lookups movement references are
// verified against. All three checkers must be set.
type Counterparties struct {
	Suppliers    ExistenceChecker
	Employees    ExistenceChecker
	ThirdParties ExistenceChecker
}

// Service posts movements: validate, check sufficiency under lock, then
// apply header, items and balance adjustments as one transaction.
type Service struct {
	repo           Repository
	materials      material.Repository
	counterparties Counterparties
	txManager      tx.Manager
	numerator      numerator.Generator
	audit          AuditLogger
}

// NewService creates the ledger service.
func NewService(
	repo Repository,
	materials material.Repository,
	counterparties Counterparties,
	txManager tx.Manager,
	gen numerator.Generator,
	audit AuditLogger,
) *Service {
	if audit == nil {
		audit = NopAuditLogger{}
	}
	return &Service{
		repo:           repo,
		materials:      materials,
		counterparties: counterparties,
		txManager:      txManager,
		numerator:      gen,
		audit:          audit,
	}
}

// Post validates and atomically applies a movement.
//
// State machine per request: received → validated → applied → committed,
// or rejected at validation, or rolled back in full when any apply step
// fails. A partially applied movement is never observable.
func (s *Service) Post(ctx context.Context, tenantID tenant.ID, mv *Movement) (*Movement, error) {
	if id.IsNil(tenantID) {
		return nil, apperror.NewUnauthorized("tenant scope not resolved")
	}
	mv.TenantID = tenantID

	if err := mv.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkCounterparties(ctx, tenantID, mv); err != nil {
			return err
		}
		if err := s.checkMaterials(ctx, tenantID, mv); err != nil {
			return err
		}

		number, err := s.nextNumber(ctx, tenantID, mv.Direction)
		if err != nil {
			return fmt.Errorf("allocate movement number: %w", err)
		}
		mv.Number = number

		if err := s.repo.CreateHeader(ctx, tenantID, mv); err != nil {
			return fmt.Errorf("insert movement header: %w", err)
		}
		if err := s.repo.CreateItems(ctx, tenantID, mv.Items); err != nil {
			return fmt.Errorf("insert movement items: %w", err)
		}

		for _, item := range mv.Items {
			if err := s.materials.AdjustBalance(ctx, tenantID, item.MaterialID, mv.Delta(item)); err != nil {
				return fmt.Errorf("adjust balance for material %s: %w", item.MaterialID, err)
			}
		}

		if err := s.audit.MovementPosted(ctx, mv); err != nil {
			return fmt.Errorf("record audit entry: %w", err)
		}

		return nil
	})
	if err != nil {
		// Structured domain errors pass through; anything else is a
		// storage failure after full rollback.
		if apperror.IsAppError(err) {
			return nil, err
		}
		logger.Error(ctx, "movement posting failed",
			"direction", string(mv.Direction),
			"items", len(mv.Items),
			"error", err,
		)
		return nil, apperror.NewDatabase(err)
	}

	logger.Info(ctx, "movement posted",
		"movement_id", mv.ID.String(),
		"number", mv.Number,
		"direction", string(mv.Direction),
		"items", len(mv.Items),
	)
	return mv, nil
}

// checkCounterparties verifies every set counterparty reference against
// the caller's tenant. A reference owned by another tenant reads exactly
// like a missing one.
func (s *Service) checkCounterparties(ctx context.Context, tenantID tenant.ID, mv *Movement) error {
	refs := []struct {
		checker ExistenceChecker
		entity  string
		id      *id.ID
	}{
		{s.counterparties.Suppliers, "supplier", mv.SupplierID},
		{s.counterparties.Employees, "employee", mv.EmployeeID},
		{s.counterparties.ThirdParties, "third_party", mv.ThirdPartyID},
	}

	for _, ref := range refs {
		if ref.id == nil || id.IsNil(*ref.id) {
			continue
		}
		ok, err := ref.checker.Exists(ctx, tenantID, *ref.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", ref.entity, err)
		}
		if !ok {
			return apperror.NewNotFound(ref.entity, ref.id.String())
		}
	}
	return nil
}

// checkMaterials locks every referenced material in the tenant scope,
// verifies existence, and for exits checks stock sufficiency against the
// locked balances.
func (s *Service) checkMaterials(ctx context.Context, tenantID tenant.ID, mv *Movement) error {
	ids := mv.MaterialIDs()

	locked, err := s.materials.LockForMovement(ctx, tenantID, ids)
	if err != nil {
		return err
	}

	byID := make(map[id.ID]*material.Material, len(locked))
	for _, m := range locked {
		byID[m.ID] = m
	}
	for _, materialID := range ids {
		if _, ok := byID[materialID]; !ok {
			return apperror.NewNotFound("material", materialID.String())
		}
	}

	if mv.Direction != DirectionExit {
		return nil
	}

	requested := mv.QuantityByMaterial()
	for _, materialID := range ids {
		m := byID[materialID]
		if m.CurrentStock < requested[materialID] {
			return apperror.NewInsufficientStock(materialID.String(), requested[materialID], m.CurrentStock)
		}
	}
	return nil
}

func (s *Service) nextNumber(ctx context.Context, tenantID tenant.ID, direction Direction) (string, error) {
	prefix := prefixEntry
	if direction == DirectionExit {
		prefix = prefixExit
	}
	return s.numerator.Next(ctx, tenantID, numerator.DefaultConfig(prefix))
}

// GetByID retrieves a movement with its items.
func (s *Service) GetByID(ctx context.Context, tenantID tenant.ID, movementID id.ID) (*Movement, error) {
	mv, err := s.repo.GetByID(ctx, tenantID, movementID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, err
	}
	return mv, nil
}

// List retrieves movement headers.
func (s *Service) List(ctx context.Context, tenantID tenant.ID, filter ListFilter) ([]*Movement, int64, error) {
	result, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return result.Items, result.TotalCount, nil
}
