// Package tenant implements the tenant scope guard.
//
// Every catalog, ledger and report operation takes the tenant id as an
// explicit parameter; this package is the only place it is ever resolved
// from. Resolution reads the authenticated principal installed by the auth
// middleware and fails closed: no principal, no tenant, no operation.
package tenant

import (
	"context"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/id"
)

// ID identifies a tenant. Every table carries it; every repository call
// filters by it.
type ID = id.ID

// Resolve returns the tenant id of the authenticated principal.
// Returns an unauthorized AppError when no principal is present or the
// principal carries no tenant. There is no fallback and no default tenant.
func Resolve(ctx context.Context) (ID, error) {
	p := appctx.GetPrincipal(ctx)
	if p == nil {
		return id.Nil(), apperror.NewUnauthorized("authentication required")
	}
	if id.IsNil(p.TenantID) {
		return id.Nil(), apperror.NewUnauthorized("tenant scope not resolved")
	}
	return p.TenantID, nil
}

// MustResolve resolves the tenant id or panics. Use only in code paths
// that run strictly after the auth middleware, e.g. tests and seeds.
func MustResolve(ctx context.Context) ID {
	tenantID, err := Resolve(ctx)
	if err != nil {
		panic("tenant scope guard: " + err.Error())
	}
	return tenantID
}
