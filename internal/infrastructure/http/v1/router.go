// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/internal/core/numerator"
	"stockroom/internal/core/security"
	"stockroom/internal/domain/auth"
	"stockroom/internal/domain/catalogs/category"
	"stockroom/internal/domain/catalogs/employee"
	"stockroom/internal/domain/catalogs/material"
	"stockroom/internal/domain/catalogs/supplier"
	"stockroom/internal/domain/catalogs/thirdparty"
	"stockroom/internal/domain/ledger"
	"stockroom/internal/domain/reports"
	"stockroom/internal/infrastructure/http/v1/handlers"
	"stockroom/internal/infrastructure/http/v1/middleware"
	"stockroom/internal/infrastructure/storage/postgres"
	"stockroom/internal/infrastructure/storage/postgres/catalog_repo"
	"stockroom/internal/infrastructure/storage/postgres/ledger_repo"
	"stockroom/internal/infrastructure/storage/postgres/report_repo"
	"stockroom/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the shared database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives transactions for all repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator allocates movement document numbers
	Numerator numerator.Generator

	// Audit records posted movements; nil disables the trail
	Audit ledger.AuditLogger

	// History serves the audit trail of posted movements
	History handlers.MovementHistory

	// Policies guards routes by role
	Policies *security.PolicyEngine

	// ReportLocation fixes the day boundary for dashboard metrics
	ReportLocation *time.Location
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, cfg)

		// Protected endpoints: the JWT middleware installs the principal
		// the tenant scope guard resolves from.
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerMovementRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)

	// Protected auth endpoints (JWT required)
	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)

	// User management is admin only
	manage := middleware.RequirePolicy(cfg.Policies, security.PolicyUserManagement, security.ActionCreate, "user")
	protected.POST("/register", manage, authHandler.Register)
	protected.GET("/users",
		middleware.RequirePolicy(cfg.Policies, security.PolicyUserManagement, security.ActionRead, "user"),
		authHandler.ListUsers)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CATEGORIES ---
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	{
		service := category.NewService(categoryRepo, cfg.TxManager)
		handler := handlers.NewCategoryHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/categories"), handler, cfg.Policies, "category")
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler, cfg.Policies, "supplier")
	}

	// --- EMPLOYEES ---
	{
		repo := catalog_repo.NewEmployeeRepo(cfg.TxManager)
		service := employee.NewService(repo, cfg.TxManager)
		handler := handlers.NewEmployeeHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/employees"), handler, cfg.Policies, "employee")
	}

	// --- THIRD PARTIES ---
	{
		repo := catalog_repo.NewThirdPartyRepo(cfg.TxManager)
		service := thirdparty.NewService(repo, cfg.TxManager)
		handler := handlers.NewThirdPartyHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/third-parties"), handler, cfg.Policies, "third_party")
	}

	// --- MATERIALS ---
	{
		repo := catalog_repo.NewMaterialRepo(cfg.TxManager)
		service := material.NewService(repo, categoryRepo, cfg.TxManager)
		handler := handlers.NewMaterialHandler(baseHandler, service)

		group := catalogs.Group("/materials")
		// The joined listing must come before the :id wildcard.
		group.GET("/with-category",
			middleware.RequirePolicy(cfg.Policies, security.PolicyCatalogAccess, security.ActionRead, "material"),
			handler.ListWithCategory)
		RegisterCatalogRoutes(group, handler, cfg.Policies, "material")
	}
}

// registerMovementRoutes registers the movement ledger endpoints.
func registerMovementRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	materialRepo := catalog_repo.NewMaterialRepo(cfg.TxManager)
	movementRepo := ledger_repo.NewMovementRepo(cfg.TxManager)
	counterparties := ledger.Counterparties{
		Suppliers:    catalog_repo.NewSupplierRepo(cfg.TxManager),
		Employees:    catalog_repo.NewEmployeeRepo(cfg.TxManager),
		ThirdParties: catalog_repo.NewThirdPartyRepo(cfg.TxManager),
	}
	service := ledger.NewService(movementRepo, materialRepo, counterparties, cfg.TxManager, cfg.Numerator, cfg.Audit)
	handler := handlers.NewMovementHandler(baseHandler, service, cfg.History)

	guard := func(action string) gin.HandlerFunc {
		return middleware.RequirePolicy(cfg.Policies, security.PolicyLedgerAccess, action, "movement")
	}

	movements := rg.Group("/movements")
	movements.POST("/entries", guard(security.ActionPost), handler.PostEntry)
	movements.POST("/exits", guard(security.ActionPost), handler.PostExit)
	movements.GET("", guard(security.ActionRead), handler.List)
	movements.GET("/:id", guard(security.ActionRead), handler.Get)
	movements.GET("/:id/history", guard(security.ActionRead), handler.History)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo, cfg.ReportLocation)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	guard := middleware.RequirePolicy(cfg.Policies, security.PolicyReportAccess, security.ActionRead, "report")

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/dashboard", guard, reportHandler.Dashboard)
	reportsGroup.GET("/financial", guard, reportHandler.Financial)
}
