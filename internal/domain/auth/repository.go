package auth

import (
	"context"

	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
)

// UserRepository defines user storage operations. Reads and writes are
// always scoped to the caller's tenant.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID within the tenant.
	GetByID(ctx context.Context, tenantID tenant.ID, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email within the tenant.
	GetByEmail(ctx context.Context, tenantID tenant.ID, email string) (*User, error)

	// Update updates user data with an optimistic version check.
	Update(ctx context.Context, user *User) error

	// List retrieves the tenant's users.
	List(ctx context.Context, tenantID tenant.ID, filter UserFilter) ([]User, int64, error)

	// Exists checks if an email is already taken within the tenant.
	Exists(ctx context.Context, tenantID tenant.ID, email string) (bool, error)
}

// TokenRepository defines refresh token storage operations.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token.
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error

	// GetRefreshToken retrieves a refresh token by hash.
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// RevokeRefreshToken revokes a single refresh token.
	RevokeRefreshToken(ctx context.Context, tokenID id.ID, reason string) error

	// RevokeAllUserTokens revokes all tokens for a user.
	RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error

	// CleanupExpiredTokens removes expired tokens.
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// UserFilter for listing users.
type UserFilter struct {
	Search   string
	IsActive *bool
	Role     string
	Limit    int
	Offset   int
}
