// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/security"
	"stockroom/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
//
// Usage:
//
//	repo := catalog_repo.NewCategoryRepo(txManager)
//	service := category.NewService(repo, txManager)
//	handler := handlers.NewCategoryHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/categories"), handler, engine, "category")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, engine *security.PolicyEngine, resource string) {
	guard := func(action string) gin.HandlerFunc {
		return middleware.RequirePolicy(engine, security.PolicyCatalogAccess, action, resource)
	}

	group.GET("", guard(security.ActionRead), handler.List)
	group.POST("", guard(security.ActionCreate), handler.Create)
	group.GET("/:id", guard(security.ActionRead), handler.Get)
	group.PUT("/:id", guard(security.ActionUpdate), handler.Update)
	group.DELETE("/:id", guard(security.ActionDelete), handler.Delete)
}
