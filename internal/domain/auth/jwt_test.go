package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/id"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	user := NewUser(id.New(), "op@acme.test", "hash", appctx.RoleOperator)
	user.Name = "Op"

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	principal, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.UserID)
	require.Equal(t, user.TenantID, principal.TenantID)
	require.Equal(t, user.Email, principal.Email)
	require.Equal(t, appctx.RoleOperator, principal.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))
	user := NewUser(id.New(), "op@acme.test", "hash", appctx.RoleAdmin)

	token, _, err := issuer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)
	user := NewUser(id.New(), "op@acme.test", "hash", appctx.RoleManager)

	token, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
