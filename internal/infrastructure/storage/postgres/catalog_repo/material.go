package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/material"
	"stockroom/internal/infrastructure/storage/postgres"
)

const materialTable = "cat_materials"

// Compile-time check.
var _ material.Repository = (*MaterialRepo)(nil)

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*BaseCatalogRepo[*material.Material]
}

// NewMaterialRepo creates a new material repository. The stock balance
// only ever changes through AdjustBalance, so Update leaves it alone.
func NewMaterialRepo(txManager *postgres.TxManager) *MaterialRepo {
	return &MaterialRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			materialTable,
			"material",
			postgres.ExtractDBColumns[material.Material](),
			func() *material.Material { return &material.Material{} },
		).WithImmutableCols("current_stock"),
	}
}

// ListWithCategory retrieves materials joined with their category name.
func (r *MaterialRepo) ListWithCategory(ctx context.Context, tenantID tenant.ID, f domain.ListFilter) (domain.ListResult[*material.WithCategory], error) {
	result := domain.ListResult[*material.WithCategory]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	cols := make([]string, 0, len(r.selectCols)+1)
	for _, col := range r.selectCols {
		cols = append(cols, "m."+col)
	}
	cols = append(cols, "c.name AS category_name")

	q := r.Builder().
		Select(cols...).
		From(materialTable + " m").
		LeftJoin(categoryTable + " c ON c.id = m.category_id AND c.tenant_id = m.tenant_id").
		Where(squirrel.Eq{"m.tenant_id": tenantID})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.ILike{"m.name": pattern})
	}
	if len(f.IDs) > 0 {
		q = q.Where(squirrel.Eq{"m.id": f.IDs})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.TxManager().GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("m.name ASC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list with category: %w", err)
	}

	return result, nil
}

// AdjustBalance applies a stock delta as a single in-place update. The
// WHERE clause carries the underflow guard, so the balance is never read
// and written back separately.
func (r *MaterialRepo) AdjustBalance(ctx context.Context, tenantID tenant.ID, materialID id.ID, delta int64) error {
	sql := `
		UPDATE cat_materials
		SET current_stock = current_stock + $1,
			updated_at = now()
		WHERE id = $2 AND tenant_id = $3 AND current_stock + $1 >= 0
	`

	querier := r.TxManager().GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, delta, materialID, tenantID)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Guard rejected the update. Distinguish a missing row from an
		// underflow by re-reading the balance.
		var available int64
		err := querier.QueryRow(ctx,
			`SELECT current_stock FROM cat_materials WHERE id = $1 AND tenant_id = $2`,
			materialID, tenantID,
		).Scan(&available)
		if err != nil {
			return apperror.NewNotFound("material", materialID.String())
		}
		return apperror.NewInsufficientStock(materialID.String(), -delta, available)
	}

	return nil
}

// LockForMovement loads the referenced materials FOR UPDATE, ordered by
// id to keep lock acquisition stable across concurrent postings.
func (r *MaterialRepo) LockForMovement(ctx context.Context, tenantID tenant.ID, ids []id.ID) ([]*material.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := r.baseSelect(tenantID).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id").
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*material.Material
	querier := r.TxManager().GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("lock for movement: %w", err)
	}

	return items, nil
}
