package numerator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockroom/internal/core/id"
)

func TestMockGenerator_SequencePerTenantAndPrefix(t *testing.T) {
	gen := NewMockGenerator()
	ctx := context.Background()
	year := time.Now().Year()

	tenantA := id.New()
	tenantB := id.New()

	num, err := gen.Next(ctx, tenantA, DefaultConfig("ENT"))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("ENT-%d-000001", year), num)

	num, err = gen.Next(ctx, tenantA, DefaultConfig("ENT"))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("ENT-%d-000002", year), num)

	// A different prefix counts independently
	num, err = gen.Next(ctx, tenantA, DefaultConfig("SAI"))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("SAI-%d-000001", year), num)

	// Another tenant starts from scratch
	num, err = gen.Next(ctx, tenantB, DefaultConfig("ENT"))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("ENT-%d-000001", year), num)
}

func TestMockGenerator_WithoutYear(t *testing.T) {
	gen := NewMockGenerator()

	num, err := gen.Next(context.Background(), id.New(), Config{Prefix: "DOC", PadWidth: 4})
	require.NoError(t, err)
	require.Equal(t, "DOC-0001", num)
}
