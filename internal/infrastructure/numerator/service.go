// Package numerator provides the PostgreSQL implementation of movement
// auto-numbering. It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	corenumerator "stockroom/internal/core/numerator"
	"stockroom/internal/core/tenant"
	"stockroom/internal/infrastructure/storage/postgres"
)

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// Service allocates sequential numbers from sys_sequences. It always
// goes through the transaction manager's querier, so a number allocated
// inside a posting transaction rolls back with it.
type Service struct {
	txManager *postgres.TxManager
}

// New creates a new numerator service.
func New(txManager *postgres.TxManager) *Service {
	return &Service{txManager: txManager}
}

// Next generates the next number for the tenant/prefix pair.
// Pattern: PREFIX-YEAR-XXXXXX (e.g., ENT-2026-000001).
func (s *Service) Next(ctx context.Context, tenantID tenant.ID, cfg corenumerator.Config) (string, error) {
	year := 0
	if cfg.IncludeYear {
		year = time.Now().Year()
	}

	var num int64
	err := s.txManager.GetQuerier(ctx).QueryRow(ctx, `
		INSERT INTO sys_sequences (tenant_id, sequence_type, year, current_val)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, sequence_type, year)
		DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, tenantID, cfg.Prefix, year).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", cfg.Prefix, err)
	}

	width := cfg.PadWidth
	if width <= 0 {
		width = 6
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, year, width, num), nil
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, width, num), nil
}
