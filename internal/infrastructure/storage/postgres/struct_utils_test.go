package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Code string `db:"code" json:"code"`
	Unit string `db:"unit" json:"unit"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "tenant_id", "version", "created_at", "updated_at", "name", "code", "unit",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	tenantID := id.New()
	cat := mockCatalog{
		Catalog: entity.NewCatalog(tenantID, "Test Name"),
		Code:    "TEST",
		Unit:    "un",
	}
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, tenantID, m["tenant_id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "un", m["unit"])
}
