package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockroom/internal/core/id"
	"stockroom/internal/infrastructure/storage/postgres"
)

func TestFromAuditEntry(t *testing.T) {
	userID := id.New()
	entry := postgres.AuditEntry{
		ID:        id.New(),
		Action:    postgres.AuditActionEntry,
		UserID:    &userID,
		UserEmail: "almox@example.com",
		Changes:   []byte(`{"number":"ENT-2026-000001"}`),
		CreatedAt: time.Now().UTC(),
	}

	resp := FromAuditEntry(entry)

	require.Equal(t, entry.ID.String(), resp.ID)
	require.Equal(t, "entry_posted", resp.Action)
	require.Equal(t, userID.String(), resp.UserID)
	require.JSONEq(t, `{"number":"ENT-2026-000001"}`, string(resp.Changes))
}

func TestFromAuditEntry_SystemPosting(t *testing.T) {
	resp := FromAuditEntry(postgres.AuditEntry{
		ID:     id.New(),
		Action: postgres.AuditActionExit,
	})

	require.Empty(t, resp.UserID)
	require.Empty(t, resp.UserEmail)
}
