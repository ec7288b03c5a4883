package ledger

import (
	"context"
	"testing"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
)

func TestMovementValidate(t *testing.T) {
	tenantID := id.New()
	supplierID := id.New()
	employeeID := id.New()
	thirdPartyID := id.New()
	materialID := id.New()
	now := time.Now()

	entry := func() *Movement {
		mv := NewEntry(tenantID, now, OriginSupplier)
		mv.SupplierID = &supplierID
		mv.AddEntryItem(materialID, 5, types.MustMoney("10.00"))
		return mv
	}
	exit := func() *Movement {
		mv := NewExit(tenantID, now)
		mv.EmployeeID = &employeeID
		mv.AddExitItem(materialID, 2, "office use")
		return mv
	}

	tests := []struct {
		name    string
		build   func() *Movement
		wantErr bool
	}{
		{"valid supplier entry", entry, false},
		{"valid employee exit", exit, false},
		{
			"unknown direction",
			func() *Movement { mv := entry(); mv.Direction = "transfer"; return mv },
			true,
		},
		{
			"zero date",
			func() *Movement { mv := entry(); mv.Date = time.Time{}; return mv },
			true,
		},
		{
			"no items",
			func() *Movement { mv := entry(); mv.Items = nil; return mv },
			true,
		},
		{
			"entry without origin",
			func() *Movement { mv := entry(); mv.Origin = nil; return mv },
			true,
		},
		{
			"supplier entry without supplier",
			func() *Movement { mv := entry(); mv.SupplierID = nil; return mv },
			true,
		},
		{
			"employee return references employee",
			func() *Movement {
				mv := NewEntry(tenantID, now, OriginEmployeeReturn)
				mv.EmployeeID = &employeeID
				mv.AddEntryItem(materialID, 1, types.MustMoney("3.00"))
				return mv
			},
			false,
		},
		{
			"employee return without employee",
			func() *Movement {
				mv := NewEntry(tenantID, now, OriginEmployeeReturn)
				mv.AddEntryItem(materialID, 1, types.MustMoney("3.00"))
				return mv
			},
			true,
		},
		{
			"zero quantity",
			func() *Movement { mv := entry(); mv.Items[0].Quantity = 0; return mv },
			true,
		},
		{
			"negative quantity",
			func() *Movement { mv := exit(); mv.Items[0].Quantity = -3; return mv },
			true,
		},
		{
			"entry item without unit price",
			func() *Movement { mv := entry(); mv.Items[0].UnitPrice = nil; return mv },
			true,
		},
		{
			"exit item without purpose",
			func() *Movement { mv := exit(); mv.Items[0].Purpose = nil; return mv },
			true,
		},
		{
			"exit with no counterparty",
			func() *Movement { mv := exit(); mv.EmployeeID = nil; return mv },
			true,
		},
		{
			"exit with both counterparties",
			func() *Movement { mv := exit(); mv.ThirdPartyID = &thirdPartyID; return mv },
			true,
		},
		{
			"exit destination mismatch",
			func() *Movement {
				mv := exit()
				dest := DestinationThirdParty
				mv.Destination = &dest
				return mv
			},
			true,
		},
		{
			"exit destination matching counterparty",
			func() *Movement {
				mv := exit()
				dest := DestinationEmployee
				mv.Destination = &dest
				return mv
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate(context.Background())
			if tt.wantErr {
				appErr, ok := apperror.AsAppError(err)
				if !ok {
					t.Fatalf("expected AppError, got %v", err)
				}
				if appErr.Code != apperror.CodeValidation {
					t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeValidation)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddEntryItemComputesTotal(t *testing.T) {
	mv := NewEntry(id.New(), time.Now(), OriginSupplier)
	mv.AddEntryItem(id.New(), 3, types.MustMoney("2.50"))

	item := mv.Items[0]
	if item.LineNo != 1 {
		t.Errorf("lineNo = %d, want 1", item.LineNo)
	}
	if item.TotalPrice == nil || item.TotalPrice.String() != "7.50" {
		t.Errorf("totalPrice = %v, want 7.50", item.TotalPrice)
	}
}

func TestQuantityByMaterialAggregatesLines(t *testing.T) {
	materialID := id.New()
	otherID := id.New()

	mv := NewExit(id.New(), time.Now())
	mv.AddExitItem(materialID, 3, "maintenance")
	mv.AddExitItem(otherID, 1, "maintenance")
	mv.AddExitItem(materialID, 4, "cleaning")

	totals := mv.QuantityByMaterial()
	if totals[materialID] != 7 {
		t.Errorf("aggregated quantity = %d, want 7", totals[materialID])
	}
	if totals[otherID] != 1 {
		t.Errorf("other quantity = %d, want 1", totals[otherID])
	}

	ids := mv.MaterialIDs()
	if len(ids) != 2 {
		t.Errorf("distinct materials = %d, want 2", len(ids))
	}
}
