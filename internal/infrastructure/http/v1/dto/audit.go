package dto

import (
	"encoding/json"
	"time"

	"stockroom/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is one record of a movement's audit trail.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	UserID    string          `json:"userId,omitempty"`
	UserEmail string          `json:"userEmail,omitempty"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FromAuditEntry converts an audit entry to its response form. Entries
// arrive already decompressed, so Changes is always plain JSON.
func FromAuditEntry(e postgres.AuditEntry) AuditEntryResponse {
	resp := AuditEntryResponse{
		ID:        e.ID.String(),
		Action:    string(e.Action),
		UserEmail: e.UserEmail,
		Changes:   json.RawMessage(e.Changes),
		CreatedAt: e.CreatedAt,
	}
	if e.UserID != nil {
		resp.UserID = e.UserID.String()
	}
	return resp
}

// FromAuditEntries converts a slice of audit entries.
func FromAuditEntries(entries []postgres.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = FromAuditEntry(e)
	}
	return out
}
