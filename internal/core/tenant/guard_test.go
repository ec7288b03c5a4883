package tenant

import (
	"context"
	"testing"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/id"
)

func TestResolve(t *testing.T) {
	tenantID := id.New()

	tests := []struct {
		name      string
		principal *appctx.Principal
		want      ID
		wantCode  string
	}{
		{
			name:      "resolves tenant from principal",
			principal: &appctx.Principal{UserID: id.New(), TenantID: tenantID, Role: appctx.RoleOperator},
			want:      tenantID,
		},
		{
			name:     "no principal fails closed",
			wantCode: apperror.CodeUnauthorized,
		},
		{
			name:      "principal without tenant fails closed",
			principal: &appctx.Principal{UserID: id.New(), Role: appctx.RoleAdmin},
			wantCode:  apperror.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.principal != nil {
				ctx = appctx.WithPrincipal(ctx, tt.principal)
			}

			got, err := Resolve(ctx)

			if tt.wantCode != "" {
				appErr, ok := apperror.AsAppError(err)
				if !ok {
					t.Fatalf("expected AppError, got %v", err)
				}
				if appErr.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("tenant = %s, want %s", got, tt.want)
			}
		})
	}
}
