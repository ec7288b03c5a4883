package numerator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stockroom/internal/core/tenant"
)

// MockGenerator is an in-memory Generator for tests and seeding.
type MockGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMockGenerator creates a fresh in-memory generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{counters: make(map[string]int64)}
}

// Next implements Generator.
func (m *MockGenerator) Next(ctx context.Context, tenantID tenant.ID, cfg Config) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := tenantID.String() + ":" + cfg.Prefix
	m.counters[key]++

	width := cfg.PadWidth
	if width <= 0 {
		width = 6
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, time.Now().Year(), width, m.counters[key]), nil
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, width, m.counters[key]), nil
}
