package router

import (
	"time"

	"prodplan/internal/config"
	"prodplan/internal/handler"
	"prodplan/internal/infra"
	"prodplan/internal/middleware"
	"prodplan/internal/repository"
	"prodplan/internal/service"
	"prodplan/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil, which disables the demand cache.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, events worker.Publisher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	var demandCache *infra.JSONCache
	if rdb != nil {
		demandCache = infra.NewJSONCache(rdb, "demand", time.Duration(cfg.DemandCacheTTLSeconds)*time.Second)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	planRepo := repository.NewPlanRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	planSvc := service.NewPlanService(planRepo, catalogRepo, events, demandCache)
	demandSvc := service.NewDemandService(planRepo, catalogRepo, demandCache, nil)
	overviewSvc := service.NewOverviewService(planRepo, catalogRepo)
	importSvc := service.NewImportService(planRepo, catalogRepo, events, demandCache)
	exportSvc := service.NewExportService(planRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	plansH := handler.NewPlansHandler(planSvc)
	demandH := handler.NewDemandHandler(demandSvc)
	overviewH := handler.NewOverviewHandler(overviewSvc)
	transferH := handler.NewTransferHandler(importSvc, exportSvc, cfg.ImportMaxUploadMB)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	readers := middleware.RequireRole(middleware.RoleViewer, middleware.RolePlanner, middleware.RoleAdmin)
	writers := middleware.RequireRole(middleware.RolePlanner, middleware.RoleAdmin)
	admins := middleware.RequireRole(middleware.RoleAdmin)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		plans := v1.Group("/plans")
		{
			plans.GET("", readers, plansH.PeriodView)
			plans.POST("", writers, plansH.Create)

			plans.GET("/export", readers, transferH.Export)
			plans.GET("/export.xlsx", readers, transferH.ExportWorkbook)
			plans.POST("/import", writers, transferH.Import)
			plans.POST("/import/xlsx", writers, transferH.ImportWorkbook)

			plans.GET("/:id", readers, plansH.Detail)
			plans.PATCH("/:id/quantity", writers, plansH.UpdateQuantity)
			plans.GET("/:id/quantity-check", readers, plansH.CheckQuantity)
			plans.DELETE("/:id", admins, plansH.Delete)
		}

		v1.GET("/demand", readers, demandH.Analyze)
		v1.GET("/overview/:year", readers, overviewH.Compile)
		v1.GET("/overview/:year/pdf", readers, overviewH.PDF)
	}

	return r
}
