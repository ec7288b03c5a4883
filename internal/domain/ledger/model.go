// Package ledger implements the stock-movement ledger: validated,
// atomically applied entry/exit transactions against material balances.
package ledger

import (
	"context"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/core/types"
)

// Direction tags a movement as a stock increase or decrease.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// EntryOrigin classifies where an entry came from.
type EntryOrigin string

const (
	OriginSupplier         EntryOrigin = "supplier"
	OriginEmployeeReturn   EntryOrigin = "employee_return"
	OriginThirdPartyReturn EntryOrigin = "third_party_return"
)

// ExitDestination is an optional classifier on exits; the authoritative
// purpose lives on each line item.
type ExitDestination string

const (
	DestinationEmployee   ExitDestination = "employee"
	DestinationThirdParty ExitDestination = "third_party"
)

// Movement is one entry or exit transaction. Immutable once posted:
// the ledger exposes no update or delete operation.
type Movement struct {
	ID       id.ID     `db:"id" json:"id"`
	TenantID tenant.ID `db:"tenant_id" json:"-"`

	// Number is the sequential document number (e.g. ENT-2026-000001)
	Number string `db:"number" json:"number"`

	Direction Direction `db:"direction" json:"direction"`
	Date      time.Time `db:"date" json:"date"`

	// Counterparty references; which one is set depends on direction
	SupplierID   *id.ID `db:"supplier_id" json:"supplierId,omitempty"`
	EmployeeID   *id.ID `db:"employee_id" json:"employeeId,omitempty"`
	ThirdPartyID *id.ID `db:"third_party_id" json:"thirdPartyId,omitempty"`

	// Origin classifies entries (supplier delivery vs. returns)
	Origin *EntryOrigin `db:"origin" json:"origin,omitempty"`

	// Destination optionally classifies exits
	Destination *ExitDestination `db:"destination" json:"destination,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Counterparty display name, populated by list queries only
	CounterpartyName *string `db:"counterparty_name" json:"counterpartyName,omitempty"`

	// Table part
	Items []Item `db:"-" json:"items"`
}

// Item is one material + quantity line within a movement.
type Item struct {
	ID         id.ID `db:"id" json:"id"`
	MovementID id.ID `db:"movement_id" json:"movementId"`
	LineNo     int   `db:"line_no" json:"lineNo"`

	MaterialID id.ID `db:"material_id" json:"materialId"`

	// Quantity in whole units, always positive
	Quantity int64 `db:"quantity" json:"quantity"`

	// Price snapshot, entries only
	UnitPrice  *types.Money `db:"unit_price" json:"unitPrice,omitempty"`
	TotalPrice *types.Money `db:"total_price" json:"totalPrice,omitempty"`

	// Purpose is required on exit lines
	Purpose *string `db:"purpose" json:"purpose,omitempty"`
}

// NewEntry creates an unposted entry movement.
func NewEntry(tenantID tenant.ID, date time.Time, origin EntryOrigin) *Movement {
	return &Movement{
		ID:        id.New(),
		TenantID:  tenantID,
		Direction: DirectionEntry,
		Date:      date,
		Origin:    &origin,
		CreatedAt: time.Now().UTC(),
	}
}

// NewExit creates an unposted exit movement.
func NewExit(tenantID tenant.ID, date time.Time) *Movement {
	return &Movement{
		ID:        id.New(),
		TenantID:  tenantID,
		Direction: DirectionExit,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
}

// AddEntryItem appends an entry line with a price snapshot.
func (m *Movement) AddEntryItem(materialID id.ID, quantity int64, unitPrice types.Money) {
	total := types.LineTotal(unitPrice, quantity)
	m.Items = append(m.Items, Item{
		ID:         id.New(),
		MovementID: m.ID,
		LineNo:     len(m.Items) + 1,
		MaterialID: materialID,
		Quantity:   quantity,
		UnitPrice:  &unitPrice,
		TotalPrice: &total,
	})
}

// AddExitItem appends an exit line with its purpose.
func (m *Movement) AddExitItem(materialID id.ID, quantity int64, purpose string) {
	m.Items = append(m.Items, Item{
		ID:         id.New(),
		MovementID: m.ID,
		LineNo:     len(m.Items) + 1,
		MaterialID: materialID,
		Quantity:   quantity,
		Purpose:    &purpose,
	})
}

// Delta returns the signed balance change this item causes.
func (m *Movement) Delta(item Item) int64 {
	if m.Direction == DirectionExit {
		return -item.Quantity
	}
	return item.Quantity
}

// MaterialIDs returns the distinct materials referenced by the items,
// preserving first-seen order.
func (m *Movement) MaterialIDs() []id.ID {
	seen := make(map[id.ID]struct{}, len(m.Items))
	ids := make([]id.ID, 0, len(m.Items))
	for _, item := range m.Items {
		if _, ok := seen[item.MaterialID]; ok {
			continue
		}
		seen[item.MaterialID] = struct{}{}
		ids = append(ids, item.MaterialID)
	}
	return ids
}

// QuantityByMaterial sums item quantities per material, for the exit
// sufficiency check (one material may appear on several lines).
func (m *Movement) QuantityByMaterial() map[id.ID]int64 {
	totals := make(map[id.ID]int64, len(m.Items))
	for _, item := range m.Items {
		totals[item.MaterialID] += item.Quantity
	}
	return totals
}

// Validate implements entity.Validatable. Checks everything that does not
// need database access; material existence and stock sufficiency are
// verified later under lock.
func (m *Movement) Validate(ctx context.Context) error {
	switch m.Direction {
	case DirectionEntry, DirectionExit:
	default:
		return apperror.NewValidation("unknown movement direction").
			WithDetail("field", "direction").
			WithDetail("value", string(m.Direction))
	}

	if m.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if len(m.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	if m.Direction == DirectionEntry {
		if err := m.validateEntryHeader(); err != nil {
			return err
		}
	} else {
		if err := m.validateExitHeader(); err != nil {
			return err
		}
	}

	for i, item := range m.Items {
		if id.IsNil(item.MaterialID) {
			return apperror.NewValidation("material is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("quantity must be a positive integer").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if m.Direction == DirectionEntry {
			if item.UnitPrice == nil {
				return apperror.NewValidation("unit price is required on entry items").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
			if item.UnitPrice.IsNegative() {
				return apperror.NewValidation("unit price cannot be negative").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
		}
		if m.Direction == DirectionExit {
			if item.Purpose == nil || *item.Purpose == "" {
				return apperror.NewValidation("purpose is required on exit items").
					WithDetail("field", "items").
					WithDetail("lineNo", i+1)
			}
		}
	}

	return nil
}

func (m *Movement) validateEntryHeader() error {
	if m.Origin == nil {
		return apperror.NewValidation("entry origin is required").
			WithDetail("field", "origin")
	}

	switch *m.Origin {
	case OriginSupplier:
		if m.SupplierID == nil || id.IsNil(*m.SupplierID) {
			return apperror.NewValidation("supplier is required for supplier entries").
				WithDetail("field", "supplierId")
		}
	case OriginEmployeeReturn:
		if m.EmployeeID == nil || id.IsNil(*m.EmployeeID) {
			return apperror.NewValidation("employee is required for employee returns").
				WithDetail("field", "employeeId")
		}
	case OriginThirdPartyReturn:
		if m.ThirdPartyID == nil || id.IsNil(*m.ThirdPartyID) {
			return apperror.NewValidation("third party is required for third party returns").
				WithDetail("field", "thirdPartyId")
		}
	default:
		return apperror.NewValidation("unknown entry origin").
			WithDetail("field", "origin").
			WithDetail("value", string(*m.Origin))
	}

	return nil
}

func (m *Movement) validateExitHeader() error {
	hasEmployee := m.EmployeeID != nil && !id.IsNil(*m.EmployeeID)
	hasThirdParty := m.ThirdPartyID != nil && !id.IsNil(*m.ThirdPartyID)

	if hasEmployee == hasThirdParty {
		return apperror.NewValidation("exit must reference exactly one of employee or third party").
			WithDetail("field", "employeeId")
	}

	if m.Destination != nil {
		switch *m.Destination {
		case DestinationEmployee:
			if !hasEmployee {
				return apperror.NewValidation("destination does not match the referenced counterparty").
					WithDetail("field", "destination")
			}
		case DestinationThirdParty:
			if !hasThirdParty {
				return apperror.NewValidation("destination does not match the referenced counterparty").
					WithDetail("field", "destination")
			}
		default:
			return apperror.NewValidation("unknown exit destination").
				WithDetail("field", "destination").
				WithDetail("value", string(*m.Destination))
		}
	}

	return nil
}
