package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tenant"
	"stockroom/internal/domain/ledger"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionEntry AuditAction = "entry_posted"
	AuditActionExit  AuditAction = "exit_posted"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry represents a single audit log entry. Changes holds the raw
// JSON snapshot, or its zstd frame when CompressionAlgo says so. UserID
// is nil for postings made without an authenticated principal, such as
// seeding.
type AuditEntry struct {
	ID              id.ID           `db:"id"`
	TenantID        tenant.ID       `db:"tenant_id"`
	EntityType      string          `db:"entity_type"`
	EntityID        id.ID           `db:"entity_id"`
	Action          AuditAction     `db:"action"`
	UserID          *id.ID          `db:"user_id"`
	UserEmail       string          `db:"user_email"`
	Changes         []byte          `db:"changes"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Compile-time check that AuditService implements ledger.AuditLogger.
var _ ledger.AuditLogger = (*AuditService)(nil)

// AuditService records posted movements in sys_audit. Payloads above the
// compression threshold are stored zstd-compressed.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// auditCols is the sys_audit column set, in insert order.
var auditCols = []string{
	"id", "tenant_id", "entity_type", "entity_id", "action",
	"user_id", "user_email", "changes", "compression_algo", "created_at",
}

// MovementPosted records a posted movement. It runs on the posting
// transaction, so the audit row commits or rolls back with the movement.
func (s *AuditService) MovementPosted(ctx context.Context, mv *ledger.Movement) error {
	action := AuditActionEntry
	if mv.Direction == ledger.DirectionExit {
		action = AuditActionExit
	}

	changes, err := json.Marshal(mv)
	if err != nil {
		return fmt.Errorf("marshal movement: %w", err)
	}

	entry := AuditEntry{
		ID:         id.New(),
		TenantID:   mv.TenantID,
		EntityType: "movement",
		EntityID:   mv.ID,
		Action:     action,
		Changes:    changes,
		CreatedAt:  time.Now().UTC(),
	}
	if p := appctx.GetPrincipal(ctx); p != nil {
		userID := p.UserID
		entry.UserID = &userID
		entry.UserEmail = p.Email
	}

	entry.CompressionAlgo = CompressionNone
	if len(entry.Changes) > s.compressThreshold {
		entry.Changes = s.encoder.EncodeAll(entry.Changes, nil)
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, tenant_id, entity_type, entity_id, action,
			user_id, user_email, changes, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	querier := s.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		entry.ID, entry.TenantID, entry.EntityType, entry.EntityID, entry.Action,
		entry.UserID, entry.UserEmail,
		entry.Changes, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	return err
}

// GetEntityHistory retrieves audit history for an entity within the
// tenant. Compressed snapshots are inflated before they are returned.
func (s *AuditService) GetEntityHistory(
	ctx context.Context,
	tenantID tenant.ID,
	entityType string,
	entityID id.ID,
	limit int,
) ([]AuditEntry, error) {
	sql := `
		SELECT id, tenant_id, entity_type, entity_id, action,
			   user_id, user_email, changes, compression_algo, created_at
		FROM sys_audit
		WHERE tenant_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY created_at DESC
		LIMIT $4
	`

	rows, err := s.txManager.GetQuerier(ctx).Query(ctx, sql, tenantID, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.TenantID, &e.EntityType, &e.EntityID, &e.Action,
			&e.UserID, &e.UserEmail, &e.Changes, &e.CompressionAlgo,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.Changes) > 0 {
			decompressed, err := s.decoder.DecodeAll(e.Changes, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress changes: %w", err)
			}
			e.Changes = decompressed
			e.CompressionAlgo = CompressionNone
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
