package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/core/id"
)

func TestDeleteSQLCarriesTenantScope(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()
	tenantID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"tenant_id": tenantID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1 AND tenant_id = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 || args[0] != entityID || args[1] != tenantID {
		t.Errorf("Args mismatch\nwant: [%v %v]\ngot:  %v", entityID, tenantID, args)
	}
}
