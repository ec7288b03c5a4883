// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/security"
)

// RequirePolicy guards a route with a named access policy. The policy is
// evaluated against the principal's role and the route's action/resource
// pair; a missing principal or policy denies access.
func RequirePolicy(engine *security.PolicyEngine, policy, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := appctx.GetPrincipal(c.Request.Context())
		if principal == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		allowed, err := engine.Allow(policy, security.Attributes{
			Role:     principal.Role,
			Action:   action,
			Resource: resource,
		})
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		if !allowed {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("policy", policy).
					WithDetail("action", action).
					WithDetail("resource", resource),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
