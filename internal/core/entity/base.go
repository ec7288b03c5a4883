package entity

import (
	"context"
	"time"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// TenantScoped is implemented by entities that belong to a tenant.
// Repositories use it to stamp and verify ownership.
type TenantScoped interface {
	GetTenantID() tenant.ID
	SetTenantID(tenant.ID)
}

// BaseEntity contains common fields for all tenant-scoped entities.
// Deletion is hard in this system; there is no deletion mark.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// TenantID scopes the row to exactly one tenant
	TenantID tenant.ID `db:"tenant_id" json:"-"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a new BaseEntity with generated ID for the tenant.
func NewBaseEntity(tenantID tenant.ID) BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        id.New(),
		TenantID:  tenantID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// GetTenantID implements TenantScoped.
func (b *BaseEntity) GetTenantID() tenant.ID {
	return b.TenantID
}

// SetTenantID implements TenantScoped.
func (b *BaseEntity) SetTenantID(tenantID tenant.ID) {
	b.TenantID = tenantID
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}
