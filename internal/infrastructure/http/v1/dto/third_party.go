package dto

import (
	"time"

	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/catalogs/thirdparty"
)

// --- Request DTOs ---

// CreateThirdPartyRequest is the request body for creating a third party.
type CreateThirdPartyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Document *string `json:"document"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateThirdPartyRequest) ToEntity(tenantID tenant.ID) *thirdparty.ThirdParty {
	t := thirdparty.NewThirdParty(tenantID, r.Name)
	t.Document = r.Document
	t.Email = r.Email
	t.Phone = r.Phone
	t.Address = r.Address
	return t
}

// UpdateThirdPartyRequest is the request body for updating a third party.
type UpdateThirdPartyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Document *string `json:"document"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateThirdPartyRequest) ApplyTo(t *thirdparty.ThirdParty) {
	t.Name = r.Name
	t.Document = r.Document
	t.Email = r.Email
	t.Phone = r.Phone
	t.Address = r.Address
	t.Version = r.Version
}

// --- Response DTOs ---

// ThirdPartyResponse is the response body for a third party.
type ThirdPartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  *string   `json:"document,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromThirdParty creates response DTO from domain entity.
func FromThirdParty(t *thirdparty.ThirdParty) *ThirdPartyResponse {
	return &ThirdPartyResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Document:  t.Document,
		Email:     t.Email,
		Phone:     t.Phone,
		Address:   t.Address,
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
