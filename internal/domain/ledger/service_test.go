package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/numerator"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/material"
)

// --- fakes ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMaterials struct {
	material.Repository // unused methods panic

	byID map[id.ID]*material.Material
}

func (f *fakeMaterials) LockForMovement(ctx context.Context, tenantID tenant.ID, ids []id.ID) ([]*material.Material, error) {
	var out []*material.Material
	for _, materialID := range ids {
		if m, ok := f.byID[materialID]; ok && m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterials) AdjustBalance(ctx context.Context, tenantID tenant.ID, materialID id.ID, delta int64) error {
	m, ok := f.byID[materialID]
	if !ok || m.TenantID != tenantID {
		return apperror.NewNotFound("material", materialID.String())
	}
	if m.CurrentStock+delta < 0 {
		return apperror.NewInsufficientStock(materialID.String(), -delta, m.CurrentStock)
	}
	m.CurrentStock += delta
	return nil
}

// scopedChecker maps catalog ids to their owning tenant.
type scopedChecker map[id.ID]tenant.ID

func (f scopedChecker) Exists(ctx context.Context, tenantID tenant.ID, entityID id.ID) (bool, error) {
	owner, ok := f[entityID]
	return ok && owner == tenantID, nil
}

// openChecker accepts every reference.
type openChecker struct{}

func (openChecker) Exists(ctx context.Context, tenantID tenant.ID, entityID id.ID) (bool, error) {
	return true, nil
}

type fakeLedgerRepo struct {
	headers []*Movement
	items   []Item

	failItems bool
}

func (f *fakeLedgerRepo) CreateHeader(ctx context.Context, tenantID tenant.ID, mv *Movement) error {
	f.headers = append(f.headers, mv)
	return nil
}

func (f *fakeLedgerRepo) CreateItems(ctx context.Context, tenantID tenant.ID, items []Item) error {
	if f.failItems {
		return errors.New("connection reset")
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeLedgerRepo) GetByID(ctx context.Context, tenantID tenant.ID, movementID id.ID) (*Movement, error) {
	for _, mv := range f.headers {
		if mv.ID == movementID && mv.TenantID == tenantID {
			return mv, nil
		}
	}
	return nil, apperror.NewNotFound("movement", movementID.String())
}

func (f *fakeLedgerRepo) List(ctx context.Context, tenantID tenant.ID, filter ListFilter) (domain.ListResult[*Movement], error) {
	var items []*Movement
	for _, mv := range f.headers {
		if mv.TenantID == tenantID {
			items = append(items, mv)
		}
	}
	return domain.ListResult[*Movement]{Items: items, TotalCount: int64(len(items))}, nil
}

// --- helpers ---

func newTestService(mats *fakeMaterials, repo *fakeLedgerRepo) *Service {
	open := Counterparties{
		Suppliers:    openChecker{},
		Employees:    openChecker{},
		ThirdParties: openChecker{},
	}
	return NewService(repo, mats, open, passthroughTx{}, numerator.NewMockGenerator(), nil)
}

func testMaterial(tenantID tenant.ID, stock int64) *material.Material {
	m := material.NewMaterial(tenantID, "Paper A4", "un")
	m.CurrentStock = stock
	m.MinimumStock = 5
	m.UnitPrice = types.MustMoney("25.00")
	return m
}

// --- tests ---

func TestPostExitReducesBalance(t *testing.T) {
	tenantID := id.New()
	employeeID := id.New()
	m := testMaterial(tenantID, 10)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{}
	svc := newTestService(mats, repo)

	mv := NewExit(tenantID, time.Now())
	mv.EmployeeID = &employeeID
	mv.AddExitItem(m.ID, 4, "office use")

	posted, err := svc.Post(context.Background(), tenantID, mv)
	require.NoError(t, err)

	require.EqualValues(t, 6, m.CurrentStock)
	require.True(t, strings.HasPrefix(posted.Number, "SAI-"), "number = %s", posted.Number)
	require.Len(t, repo.headers, 1)
	require.Len(t, repo.items, 1)
}

func TestPostExitInsufficientStock(t *testing.T) {
	tenantID := id.New()
	employeeID := id.New()
	m := testMaterial(tenantID, 6)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{}
	svc := newTestService(mats, repo)

	mv := NewExit(tenantID, time.Now())
	mv.EmployeeID = &employeeID
	mv.AddExitItem(m.ID, 10, "office use")

	_, err := svc.Post(context.Background(), tenantID, mv)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	require.EqualValues(t, 10, appErr.Details["requested"])
	require.EqualValues(t, 6, appErr.Details["available"])

	// No side effects.
	require.EqualValues(t, 6, m.CurrentStock)
	require.Empty(t, repo.headers)
	require.Empty(t, repo.items)
}

func TestPostExitAggregatesDuplicateLines(t *testing.T) {
	tenantID := id.New()
	employeeID := id.New()
	m := testMaterial(tenantID, 6)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	svc := newTestService(mats, &fakeLedgerRepo{})

	// 4 + 3 across two lines exceeds the balance of 6 even though each
	// line alone would pass.
	mv := NewExit(tenantID, time.Now())
	mv.EmployeeID = &employeeID
	mv.AddExitItem(m.ID, 4, "maintenance")
	mv.AddExitItem(m.ID, 3, "cleaning")

	_, err := svc.Post(context.Background(), tenantID, mv)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	require.EqualValues(t, 6, m.CurrentStock)
}

func TestPostEntryIncreasesBalanceAndSnapshotsPrice(t *testing.T) {
	tenantID := id.New()
	supplierID := id.New()
	m := testMaterial(tenantID, 3)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{}
	svc := newTestService(mats, repo)

	mv := NewEntry(tenantID, time.Now(), OriginSupplier)
	mv.SupplierID = &supplierID
	mv.AddEntryItem(m.ID, 7, types.MustMoney("12.30"))

	posted, err := svc.Post(context.Background(), tenantID, mv)
	require.NoError(t, err)

	require.EqualValues(t, 10, m.CurrentStock)
	require.True(t, strings.HasPrefix(posted.Number, "ENT-"))
	require.Equal(t, "86.10", repo.items[0].TotalPrice.String())
}

func TestPostRejectsForeignTenantMaterial(t *testing.T) {
	tenantID := id.New()
	otherTenant := id.New()
	supplierID := id.New()
	mine := testMaterial(tenantID, 5)
	foreign := testMaterial(otherTenant, 50)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{
		mine.ID:    mine,
		foreign.ID: foreign,
	}}
	repo := &fakeLedgerRepo{}
	svc := newTestService(mats, repo)

	mv := NewEntry(tenantID, time.Now(), OriginSupplier)
	mv.SupplierID = &supplierID
	mv.AddEntryItem(mine.ID, 2, types.MustMoney("1.00"))
	mv.AddEntryItem(foreign.ID, 2, types.MustMoney("1.00"))

	_, err := svc.Post(context.Background(), tenantID, mv)

	require.True(t, apperror.IsNotFound(err), "expected not found, got %v", err)

	// Neither line applied.
	require.EqualValues(t, 5, mine.CurrentStock)
	require.EqualValues(t, 50, foreign.CurrentStock)
	require.Empty(t, repo.headers)
}

func TestPostRejectsForeignTenantCounterparty(t *testing.T) {
	tenantID := id.New()
	otherTenant := id.New()
	supplierID := id.New()
	m := testMaterial(tenantID, 5)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{}

	// The supplier exists, but for another tenant.
	counterparties := Counterparties{
		Suppliers:    scopedChecker{supplierID: otherTenant},
		Employees:    openChecker{},
		ThirdParties: openChecker{},
	}
	svc := NewService(repo, mats, counterparties, passthroughTx{}, numerator.NewMockGenerator(), nil)

	mv := NewEntry(tenantID, time.Now(), OriginSupplier)
	mv.SupplierID = &supplierID
	mv.AddEntryItem(m.ID, 2, types.MustMoney("1.00"))

	_, err := svc.Post(context.Background(), tenantID, mv)

	require.True(t, apperror.IsNotFound(err), "expected not found, got %v", err)
	require.EqualValues(t, 5, m.CurrentStock)
	require.Empty(t, repo.headers)
}

func TestPostWithoutTenantFailsClosed(t *testing.T) {
	svc := newTestService(&fakeMaterials{}, &fakeLedgerRepo{})

	mv := NewExit(id.New(), time.Now())
	_, err := svc.Post(context.Background(), id.Nil(), mv)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestPostMapsStorageFailureToPersistenceError(t *testing.T) {
	tenantID := id.New()
	supplierID := id.New()
	m := testMaterial(tenantID, 3)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{failItems: true}
	svc := newTestService(mats, repo)

	mv := NewEntry(tenantID, time.Now(), OriginSupplier)
	mv.SupplierID = &supplierID
	mv.AddEntryItem(m.ID, 2, types.MustMoney("1.00"))

	_, err := svc.Post(context.Background(), tenantID, mv)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeDatabase, appErr.Code)
}

func TestGetByIDScopedToTenant(t *testing.T) {
	tenantID := id.New()
	employeeID := id.New()
	m := testMaterial(tenantID, 10)
	mats := &fakeMaterials{byID: map[id.ID]*material.Material{m.ID: m}}
	repo := &fakeLedgerRepo{}
	svc := newTestService(mats, repo)

	mv := NewExit(tenantID, time.Now())
	mv.EmployeeID = &employeeID
	mv.AddExitItem(m.ID, 1, "office use")
	posted, err := svc.Post(context.Background(), tenantID, mv)
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), tenantID, posted.ID)
	require.NoError(t, err)
	require.Equal(t, posted.ID, got.ID)

	_, err = svc.GetByID(context.Background(), id.New(), posted.ID)
	require.True(t, apperror.IsNotFound(err))
}
