package ledger

import (
	"context"
	"time"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain"
)

// ListFilter narrows movement list queries.
type ListFilter struct {
	Direction *Direction
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// DefaultListFilter returns sensible defaults (newest first is implied).
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository defines movement persistence. Movements are insert-only;
// there are deliberately no update or delete methods.
type Repository interface {
	// CreateHeader inserts the movement row.
	CreateHeader(ctx context.Context, tenantID tenant.ID, mv *Movement) error

	// CreateItems inserts all item rows of one movement.
	CreateItems(ctx context.Context, tenantID tenant.ID, items []Item) error

	// GetByID retrieves a movement with its items.
	GetByID(ctx context.Context, tenantID tenant.ID, movementID id.ID) (*Movement, error)

	// List retrieves movement headers newest first, counterparty name joined.
	List(ctx context.Context, tenantID tenant.ID, filter ListFilter) (domain.ListResult[*Movement], error)
}

// AuditLogger records posted movements for the audit trail.
// Implementations live in infrastructure.
type AuditLogger interface {
	MovementPosted(ctx context.Context, mv *Movement) error
}

// NopAuditLogger discards audit records. Used in tests and seeds.
type NopAuditLogger struct{}

// MovementPosted implements AuditLogger.
func (NopAuditLogger) MovementPosted(ctx context.Context, mv *Movement) error { return nil }
