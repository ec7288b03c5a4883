package ledger_repo

import (
	"strings"
	"testing"
	"time"

	"stockroom/internal/core/id"
	"stockroom/internal/domain/ledger"
	"stockroom/internal/infrastructure/storage/postgres"
)

func newTestRepo() *MovementRepo {
	return NewMovementRepo(postgres.NewTxManagerFromRawPool(nil))
}

func TestListQuery_JoinsStayInTenantScope(t *testing.T) {
	repo := newTestRepo()
	tenantID := id.New()

	sql, args, err := repo.listQuery(tenantID, ledger.ListFilter{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantJoins := []string{
		"LEFT JOIN cat_suppliers s ON s.id = m.supplier_id AND s.tenant_id = m.tenant_id",
		"LEFT JOIN cat_employees e ON e.id = m.employee_id AND e.tenant_id = m.tenant_id",
		"LEFT JOIN cat_third_parties tp ON tp.id = m.third_party_id AND tp.tenant_id = m.tenant_id",
	}
	for _, join := range wantJoins {
		if !strings.Contains(sql, join) {
			t.Errorf("join without tenant predicate\nwant: %s\nsql:  %s", join, sql)
		}
	}

	if !strings.Contains(sql, "WHERE m.tenant_id = $1") {
		t.Errorf("missing tenant filter in: %s", sql)
	}
	if len(args) != 1 || args[0] != tenantID {
		t.Errorf("tenant arg mismatch: %v", args)
	}
}

func TestListQuery_AppliesFilters(t *testing.T) {
	repo := newTestRepo()
	direction := ledger.DirectionExit
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := repo.listQuery(id.New(), ledger.ListFilter{
		Direction: &direction,
		From:      &from,
		To:        &to,
	}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, clause := range []string{"m.direction = $2", "m.date >= $3", "m.date < $4"} {
		if !strings.Contains(sql, clause) {
			t.Errorf("missing clause %q in: %s", clause, sql)
		}
	}
	if len(args) != 4 {
		t.Fatalf("args count mismatch: want 4, got %d", len(args))
	}
	if args[1] != direction {
		t.Errorf("direction arg mismatch: %v", args[1])
	}
}
