package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPolicyEngineRegisterAndAllow(t *testing.T) {
	e, err := NewPolicyEngine()
	require.NoError(t, err)

	require.NoError(t, e.Register("writes_need_manager",
		`action == "read" || role == "manager"`))

	tests := []struct {
		name  string
		attrs Attributes
		want  bool
	}{
		{"read allowed for anyone", Attributes{Role: "operator", Action: "read"}, true},
		{"write allowed for manager", Attributes{Role: "manager", Action: "update"}, true},
		{"write denied for operator", Attributes{Role: "operator", Action: "delete"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Allow("writes_need_manager", tt.attrs)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyEngineRejectsNonBoolExpression(t *testing.T) {
	e, err := NewPolicyEngine()
	require.NoError(t, err)

	err = e.Register("bad", `role + action`)
	require.Error(t, err)
}

func TestPolicyEngineUnknownPolicyFailsClosed(t *testing.T) {
	e, err := NewPolicyEngine()
	require.NoError(t, err)

	allowed, err := e.Allow("missing", Attributes{Role: "admin"})
	require.Error(t, err)
	require.False(t, allowed)
}

func TestDefaultPolicyEngine(t *testing.T) {
	e, err := DefaultPolicyEngine()
	require.NoError(t, err)

	tests := []struct {
		policy string
		attrs  Attributes
		want   bool
	}{
		{PolicyCatalogAccess, Attributes{Role: "operator", Action: "read", Resource: "material"}, true},
		{PolicyCatalogAccess, Attributes{Role: "operator", Action: "delete", Resource: "material"}, false},
		{PolicyCatalogAccess, Attributes{Role: "manager", Action: "delete", Resource: "material"}, true},
		{PolicyLedgerAccess, Attributes{Role: "operator", Action: "post", Resource: "movement"}, true},
		{PolicyUserManagement, Attributes{Role: "manager", Action: "create", Resource: "user"}, false},
		{PolicyUserManagement, Attributes{Role: "admin", Action: "create", Resource: "user"}, true},
	}

	for _, tt := range tests {
		allowed, err := e.Allow(tt.policy, tt.attrs)
		require.NoError(t, err)
		require.Equal(t, tt.want, allowed, "%s %+v", tt.policy, tt.attrs)
	}
}
