// Package numerator provides domain contracts for movement auto-numbering.
// Implementations live in infrastructure layer.
package numerator

import (
	"context"

	"stockroom/internal/core/tenant"
)

// Generator generates sequential movement numbers per tenant and prefix.
// Pattern: PREFIX-YEAR-XXXXXX (e.g., ENT-2026-000001).
//
// Numbers are allocated inside the caller's transaction so a rolled-back
// movement never leaves a committed number behind.
type Generator interface {
	// Next returns the next number for the tenant/prefix pair.
	Next(ctx context.Context, tenantID tenant.ID, cfg Config) (string, error)
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "ENT", "SAI")
	Prefix string

	// IncludeYear adds the current year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 6)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    6,
	}
}
