// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"stockroom/internal/core/id"
)

// Known principal roles.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// Principal contains the authenticated user information installed by the
// auth middleware. Domain code reads the tenant id from it through the
// tenant scope guard, never directly from ambient state.
type Principal struct {
	UserID   id.ID
	TenantID id.ID
	Email    string
	Role     string
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

type principalContextKey struct{}

// WithPrincipal adds Principal to context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// GetPrincipal returns Principal from context, or nil when unauthenticated.
func GetPrincipal(ctx context.Context) *Principal {
	if v, ok := ctx.Value(principalContextKey{}).(*Principal); ok {
		return v
	}
	return nil
}

// GetUserID returns the authenticated user id from context or a nil id.
func GetUserID(ctx context.Context) id.ID {
	if p := GetPrincipal(ctx); p != nil {
		return p.UserID
	}
	return id.Nil()
}

// HasRole checks if the principal carries a specific role.
func HasRole(ctx context.Context, role string) bool {
	p := GetPrincipal(ctx)
	return p != nil && p.Role == role
}
