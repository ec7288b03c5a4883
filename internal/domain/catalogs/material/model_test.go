package material

import (
	"context"
	"testing"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		minimum int64
		want    StockStatus
	}{
		{"at minimum is critical", 10, 10, StatusCritical},
		{"below minimum is critical", 4, 5, StatusCritical},
		{"zero stock zero minimum is critical", 0, 0, StatusCritical},
		{"just above minimum is low", 11, 10, StatusLow},
		{"exactly 1.2x minimum is low", 12, 10, StatusLow},
		{"above 1.2x minimum is adequate", 13, 10, StatusAdequate},
		{"well stocked is adequate", 100, 5, StatusAdequate},
		{"odd minimum boundary is exact", 6, 5, StatusLow}, // 6*10 <= 5*12
		{"odd minimum above boundary", 7, 5, StatusAdequate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStock(tt.current, tt.minimum); got != tt.want {
				t.Errorf("ClassifyStock(%d, %d) = %s, want %s", tt.current, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestMaterialValidate(t *testing.T) {
	tenantID := id.New()

	valid := func() *Material {
		m := NewMaterial(tenantID, "Detergent", "un")
		m.MinimumStock = 5
		m.UnitPrice = types.MustMoney("12.50")
		return m
	}

	tests := []struct {
		name    string
		mutate  func(*Material)
		wantErr bool
	}{
		{"valid material", func(m *Material) {}, false},
		{"missing name", func(m *Material) { m.Name = "" }, true},
		{"missing unit", func(m *Material) { m.Unit = "" }, true},
		{"negative current stock", func(m *Material) { m.CurrentStock = -1 }, true},
		{"negative minimum stock", func(m *Material) { m.MinimumStock = -1 }, true},
		{"negative unit price", func(m *Material) { m.UnitPrice = types.MustMoney("-0.01") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)

			err := m.Validate(context.Background())
			if tt.wantErr {
				if appErr, ok := apperror.AsAppError(err); !ok || appErr.Code != apperror.CodeValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMaterialTotalValue(t *testing.T) {
	m := NewMaterial(id.New(), "Cable", "m")
	m.CurrentStock = 6
	m.UnitPrice = types.MustMoney("2.35")

	if got, want := m.TotalValue().String(), "14.10"; got != want {
		t.Errorf("TotalValue = %s, want %s", got, want)
	}
}
