package catalog_repo

import (
	"testing"

	"stockroom/internal/core/id"
	"stockroom/internal/domain/filter"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", "test", []string{"id", "tenant_id", "name", "col1"}, func() any { return nil })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newTestRepo()
	tenantID := id.New()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "GreaterOrEqual",
			item:     filter.Item{Field: "col1", Operator: filter.GreaterOrEqual, Value: 10},
			wantSQL:  "SELECT id, tenant_id, name, col1 FROM test_table WHERE tenant_id = $1 AND col1 >= $2",
			wantArgs: []any{tenantID, 10},
		},
		{
			name:     "LessOrEqual",
			item:     filter.Item{Field: "col1", Operator: filter.LessOrEqual, Value: 5},
			wantSQL:  "SELECT id, tenant_id, name, col1 FROM test_table WHERE tenant_id = $1 AND col1 <= $2",
			wantArgs: []any{tenantID, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseQ := repo.baseSelect(tenantID)
			q, err := repo.applyAdvancedFilters(baseQ, []filter.Item{tt.item})
			if err != nil {
				t.Fatalf("applyAdvancedFilters failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			if args[1] != tt.wantArgs[1] {
				t.Errorf("Args mismatch\nwant: %v\ngot:  %v", tt.wantArgs[1], args[1])
			}
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	baseQ := repo.baseSelect(id.New())
	_, err := repo.applyAdvancedFilters(baseQ, []filter.Item{
		{Field: "password_hash", Operator: filter.Equal, Value: "x"},
	})
	if err == nil {
		t.Fatal("expected error for non-whitelisted column")
	}
}
