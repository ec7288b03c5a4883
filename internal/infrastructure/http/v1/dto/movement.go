package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/ledger"
)

// --- Request DTOs ---

// EntryItemRequest is one line of an entry movement.
type EntryItemRequest struct {
	MaterialID string          `json:"materialId" binding:"required,uuid"`
	Quantity   int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

// CreateEntryRequest is the request body for posting a stock entry.
type CreateEntryRequest struct {
	Date         time.Time          `json:"date" binding:"required"`
	Origin       string             `json:"origin" binding:"required"`
	SupplierID   *string            `json:"supplierId" binding:"omitempty,uuid"`
	EmployeeID   *string            `json:"employeeId" binding:"omitempty,uuid"`
	ThirdPartyID *string            `json:"thirdPartyId" binding:"omitempty,uuid"`
	Notes        *string            `json:"notes"`
	Items        []EntryItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to an unposted domain movement.
func (r *CreateEntryRequest) ToEntity(tenantID tenant.ID) (*ledger.Movement, error) {
	mv := ledger.NewEntry(tenantID, r.Date, ledger.EntryOrigin(r.Origin))
	mv.Notes = r.Notes

	var err error
	if mv.SupplierID, err = parseOptionalID(r.SupplierID, "supplierId"); err != nil {
		return nil, err
	}
	if mv.EmployeeID, err = parseOptionalID(r.EmployeeID, "employeeId"); err != nil {
		return nil, err
	}
	if mv.ThirdPartyID, err = parseOptionalID(r.ThirdPartyID, "thirdPartyId"); err != nil {
		return nil, err
	}

	for _, item := range r.Items {
		materialID, err := id.Parse(item.MaterialID)
		if err != nil {
			return nil, apperror.NewValidation("invalid material id").
				WithDetail("field", "items").
				WithDetail("value", item.MaterialID)
		}
		mv.AddEntryItem(materialID, item.Quantity, item.UnitPrice)
	}
	return mv, nil
}

// ExitItemRequest is one line of an exit movement. Purpose is per line.
type ExitItemRequest struct {
	MaterialID string `json:"materialId" binding:"required,uuid"`
	Quantity   int64  `json:"quantity" binding:"required,min=1"`
	Purpose    string `json:"purpose" binding:"required"`
}

// CreateExitRequest is the request body for posting a stock exit.
type CreateExitRequest struct {
	Date         time.Time         `json:"date" binding:"required"`
	Destination  *string           `json:"destination"`
	EmployeeID   *string           `json:"employeeId" binding:"omitempty,uuid"`
	ThirdPartyID *string           `json:"thirdPartyId" binding:"omitempty,uuid"`
	Notes        *string           `json:"notes"`
	Items        []ExitItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to an unposted domain movement.
func (r *CreateExitRequest) ToEntity(tenantID tenant.ID) (*ledger.Movement, error) {
	mv := ledger.NewExit(tenantID, r.Date)
	mv.Notes = r.Notes

	if r.Destination != nil && *r.Destination != "" {
		dest := ledger.ExitDestination(*r.Destination)
		mv.Destination = &dest
	}

	var err error
	if mv.EmployeeID, err = parseOptionalID(r.EmployeeID, "employeeId"); err != nil {
		return nil, err
	}
	if mv.ThirdPartyID, err = parseOptionalID(r.ThirdPartyID, "thirdPartyId"); err != nil {
		return nil, err
	}

	for _, item := range r.Items {
		materialID, err := id.Parse(item.MaterialID)
		if err != nil {
			return nil, apperror.NewValidation("invalid material id").
				WithDetail("field", "items").
				WithDetail("value", item.MaterialID)
		}
		mv.AddExitItem(materialID, item.Quantity, item.Purpose)
	}
	return mv, nil
}

// ListMovementsRequest contains movement list query parameters.
type ListMovementsRequest struct {
	Direction string `form:"direction" binding:"omitempty,oneof=entry exit"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a ledger list filter.
func (r *ListMovementsRequest) ToFilter() (ledger.ListFilter, error) {
	f := ledger.DefaultListFilter()
	if r.Direction != "" {
		d := ledger.Direction(r.Direction)
		f.Direction = &d
	}
	if r.From != "" {
		from, err := time.Parse("2006-01-02", r.From)
		if err != nil {
			return f, apperror.NewValidation("invalid from date").WithDetail("field", "from")
		}
		f.From = &from
	}
	if r.To != "" {
		to, err := time.Parse("2006-01-02", r.To)
		if err != nil {
			return f, apperror.NewValidation("invalid to date").WithDetail("field", "to")
		}
		f.To = &to
	}
	if r.Limit > 0 {
		f.Limit = r.Limit
	}
	f.Offset = r.Offset
	return f, nil
}

func parseOptionalID(s *string, field string) (*id.ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*s)
	if err != nil {
		return nil, apperror.NewValidation("invalid id").WithDetail("field", field)
	}
	return &parsed, nil
}

// --- Response DTOs ---

// MovementItemResponse is one line of a posted movement.
type MovementItemResponse struct {
	ID         string           `json:"id"`
	LineNo     int              `json:"lineNo"`
	MaterialID string           `json:"materialId"`
	Quantity   int64            `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
	Purpose    *string          `json:"purpose,omitempty"`
}

// MovementResponse is the response body for a posted movement.
type MovementResponse struct {
	ID               string                 `json:"id"`
	Number           string                 `json:"number"`
	Direction        string                 `json:"direction"`
	Date             time.Time              `json:"date"`
	SupplierID       *string                `json:"supplierId,omitempty"`
	EmployeeID       *string                `json:"employeeId,omitempty"`
	ThirdPartyID     *string                `json:"thirdPartyId,omitempty"`
	Origin           *string                `json:"origin,omitempty"`
	Destination      *string                `json:"destination,omitempty"`
	Notes            *string                `json:"notes,omitempty"`
	CounterpartyName *string                `json:"counterpartyName,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	Items            []MovementItemResponse `json:"items,omitempty"`
}

// FromMovement creates response DTO from domain entity.
func FromMovement(mv *ledger.Movement) *MovementResponse {
	resp := &MovementResponse{
		ID:               mv.ID.String(),
		Number:           mv.Number,
		Direction:        string(mv.Direction),
		Date:             mv.Date,
		SupplierID:       idToString(mv.SupplierID),
		EmployeeID:       idToString(mv.EmployeeID),
		ThirdPartyID:     idToString(mv.ThirdPartyID),
		Notes:            mv.Notes,
		CounterpartyName: mv.CounterpartyName,
		CreatedAt:        mv.CreatedAt,
	}
	if mv.Origin != nil {
		s := string(*mv.Origin)
		resp.Origin = &s
	}
	if mv.Destination != nil {
		s := string(*mv.Destination)
		resp.Destination = &s
	}
	for _, item := range mv.Items {
		resp.Items = append(resp.Items, MovementItemResponse{
			ID:         item.ID.String(),
			LineNo:     item.LineNo,
			MaterialID: item.MaterialID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
			Purpose:    item.Purpose,
		})
	}
	return resp
}

func idToString(i *id.ID) *string {
	if i == nil {
		return nil
	}
	s := i.String()
	return &s
}
