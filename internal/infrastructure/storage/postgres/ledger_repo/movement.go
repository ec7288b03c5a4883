// Package ledger_repo provides the PostgreSQL implementation of movement
// persistence. Movements are insert-only; the tables have no update path.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain"
	"stockroom/internal/domain/ledger"
	"stockroom/internal/infrastructure/storage/postgres"
)

const (
	movementTable = "mov_movements"
	itemTable     = "mov_items"
)

var movementCols = []string{
	"id", "tenant_id", "number", "direction", "date",
	"supplier_id", "employee_id", "third_party_id",
	"origin", "destination", "notes", "created_at",
}

var itemCols = []string{
	"id", "movement_id", "line_no", "material_id",
	"quantity", "unit_price", "total_price", "purpose",
}

// Compile-time check.
var _ ledger.Repository = (*MovementRepo)(nil)

// MovementRepo implements ledger.Repository.
type MovementRepo struct {
	txManager *postgres.TxManager
	batch     *postgres.BatchInserter
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txManager *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txManager: txManager,
		batch:     postgres.NewBatchInserter(txManager),
	}
}

func (r *MovementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateHeader inserts the movement row.
func (r *MovementRepo) CreateHeader(ctx context.Context, tenantID tenant.ID, mv *ledger.Movement) error {
	q := r.builder().
		Insert(movementTable).
		Columns(movementCols...).
		Values(
			mv.ID, tenantID, mv.Number, mv.Direction, mv.Date,
			mv.SupplierID, mv.EmployeeID, mv.ThirdPartyID,
			mv.Origin, mv.Destination, mv.Notes, mv.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

// CreateItems inserts all item rows of one movement using the COPY
// protocol. Must run inside the posting transaction.
func (r *MovementRepo) CreateItems(ctx context.Context, tenantID tenant.ID, items []ledger.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{
			item.ID, item.MovementID, item.LineNo, item.MaterialID,
			item.Quantity, item.UnitPrice, item.TotalPrice, item.Purpose,
		})
	}

	if _, err := r.batch.CopyFromSlice(ctx, itemTable, itemCols, rows); err != nil {
		return fmt.Errorf("insert movement items: %w", err)
	}

	return nil
}

// GetByID retrieves a movement with its items.
func (r *MovementRepo) GetByID(ctx context.Context, tenantID tenant.ID, movementID id.ID) (*ledger.Movement, error) {
	q := r.builder().
		Select(movementCols...).
		From(movementTable).
		Where(squirrel.Eq{"id": movementID}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var mv ledger.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &mv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}

	itemsQ := r.builder().
		Select(itemCols...).
		From(itemTable).
		Where(squirrel.Eq{"movement_id": movementID}).
		OrderBy("line_no")

	itemsSQL, itemsArgs, err := itemsQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &mv.Items, itemsSQL, itemsArgs...); err != nil {
		return nil, fmt.Errorf("get movement items: %w", err)
	}

	return &mv, nil
}

// listQuery builds the joined header select. The joins repeat the tenant
// predicate so a counterparty name never resolves across tenants.
func (r *MovementRepo) listQuery(tenantID tenant.ID, f ledger.ListFilter) squirrel.SelectBuilder {
	cols := make([]string, 0, len(movementCols)+1)
	for _, col := range movementCols {
		cols = append(cols, "m."+col)
	}
	cols = append(cols, "COALESCE(s.name, e.name, tp.name) AS counterparty_name")

	q := r.builder().
		Select(cols...).
		From(movementTable + " m").
		LeftJoin("cat_suppliers s ON s.id = m.supplier_id AND s.tenant_id = m.tenant_id").
		LeftJoin("cat_employees e ON e.id = m.employee_id AND e.tenant_id = m.tenant_id").
		LeftJoin("cat_third_parties tp ON tp.id = m.third_party_id AND tp.tenant_id = m.tenant_id").
		Where(squirrel.Eq{"m.tenant_id": tenantID})

	if f.Direction != nil {
		q = q.Where(squirrel.Eq{"m.direction": *f.Direction})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"m.date": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"m.date": *f.To})
	}

	return q
}

// List retrieves movement headers newest first with the counterparty
// name resolved from whichever reference is set.
func (r *MovementRepo) List(ctx context.Context, tenantID tenant.ID, f ledger.ListFilter) (domain.ListResult[*ledger.Movement], error) {
	result := domain.ListResult[*ledger.Movement]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.listQuery(tenantID, f)

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("m.date DESC", "m.created_at DESC")
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
		return result, fmt.Errorf("list movements: %w", err)
	}

	return result, nil
}
