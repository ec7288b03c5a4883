package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/id"
	"stockroom/internal/domain/ledger"
)

func TestCreateEntryRequest_ToEntity(t *testing.T) {
	tenantID := id.New()
	supplierID := id.New()
	materialID := id.New()

	sid := supplierID.String()
	req := CreateEntryRequest{
		Date:       time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Origin:     "supplier",
		SupplierID: &sid,
		Items: []EntryItemRequest{
			{MaterialID: materialID.String(), Quantity: 4, UnitPrice: decimal.RequireFromString("25.90")},
		},
	}

	mv, err := req.ToEntity(tenantID)
	require.NoError(t, err)

	require.Equal(t, ledger.DirectionEntry, mv.Direction)
	require.Equal(t, tenantID, mv.TenantID)
	require.NotNil(t, mv.SupplierID)
	require.Equal(t, supplierID, *mv.SupplierID)

	require.Len(t, mv.Items, 1)
	item := mv.Items[0]
	require.Equal(t, materialID, item.MaterialID)
	require.Equal(t, int64(4), item.Quantity)
	require.NotNil(t, item.TotalPrice)
	require.True(t, item.TotalPrice.Equal(decimal.RequireFromString("103.60")))
}

func TestCreateEntryRequest_RejectsBadMaterialID(t *testing.T) {
	req := CreateEntryRequest{
		Date:   time.Now(),
		Origin: "supplier",
		Items: []EntryItemRequest{
			{MaterialID: "not-a-uuid", Quantity: 1},
		},
	}

	_, err := req.ToEntity(id.New())
	require.Error(t, err)
}

func TestCreateExitRequest_PurposePerLine(t *testing.T) {
	tenantID := id.New()
	employeeID := id.New()
	eid := employeeID.String()

	first := id.New()
	second := id.New()

	req := CreateExitRequest{
		Date:       time.Now(),
		EmployeeID: &eid,
		Items: []ExitItemRequest{
			{MaterialID: first.String(), Quantity: 2, Purpose: "office restock"},
			{MaterialID: second.String(), Quantity: 1, Purpose: "maintenance"},
		},
	}

	mv, err := req.ToEntity(tenantID)
	require.NoError(t, err)

	require.Equal(t, ledger.DirectionExit, mv.Direction)
	require.Len(t, mv.Items, 2)

	require.Equal(t, 1, mv.Items[0].LineNo)
	require.NotNil(t, mv.Items[0].Purpose)
	require.Equal(t, "office restock", *mv.Items[0].Purpose)

	require.Equal(t, 2, mv.Items[1].LineNo)
	require.NotNil(t, mv.Items[1].Purpose)
	require.Equal(t, "maintenance", *mv.Items[1].Purpose)
}

func TestListMovementsRequest_ToFilter(t *testing.T) {
	req := ListMovementsRequest{
		Direction: "exit",
		From:      "2026-08-01",
		To:        "2026-08-31",
		Limit:     20,
	}

	f, err := req.ToFilter()
	require.NoError(t, err)

	require.NotNil(t, f.Direction)
	require.Equal(t, ledger.DirectionExit, *f.Direction)
	require.Equal(t, 20, f.Limit)
	require.NotNil(t, f.From)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *f.From)
}
