package router

import (
	"time"

	"github.com/SkyVence/project-avims-sub001/internal/config"
	"github.com/SkyVence/project-avims-sub001/internal/handler"
	"github.com/SkyVence/project-avims-sub001/internal/middleware"
	"github.com/SkyVence/project-avims-sub001/internal/policy"
	"github.com/SkyVence/project-avims-sub001/internal/repository"
	"github.com/SkyVence/project-avims-sub001/internal/service"
	"github.com/SkyVence/project-avims-sub001/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup wires repositories, services, handlers and routes. It is the single
// composition root; nothing else constructs services.
func Setup(db *gorm.DB, rdb *redis.Client, cfg *config.Config, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	itemRepo := repository.NewItemRepository(db)
	pkgRepo := repository.NewPackageRepository(db)
	opRepo := repository.NewOperationRepository(db)
	taxRepo := repository.NewTaxonomyRepository(db)
	actionRepo := repository.NewActionRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	auditSvc := service.NewAuditService(actionRepo)
	itemSvc := service.NewItemService(itemRepo, pkgRepo, taxRepo, auditSvc, dispatcher)
	pkgSvc := service.NewPackageService(pkgRepo, itemRepo, auditSvc)
	opSvc := service.NewOperationService(opRepo, itemRepo, auditSvc)
	taxSvc := service.NewTaxonomyService(taxRepo, auditSvc)
	reportSvc := service.NewReportService(reportRepo, opRepo, pkgRepo, auditSvc)
	authSvc := service.NewAuthService(userRepo, cfg)

	items := handler.NewItemsHandler(itemSvc)
	packages := handler.NewPackagesHandler(pkgSvc)
	operations := handler.NewOperationsHandler(opSvc)
	categories := handler.NewTaxonomyHandler(taxSvc, service.KindCategory)
	families := handler.NewTaxonomyHandler(taxSvc, service.KindFamily)
	subFamilies := handler.NewTaxonomyHandler(taxSvc, service.KindSubFamily)
	reports := handler.NewReportsHandler(reportSvc)
	auth := handler.NewAuthHandler(authSvc)
	users := handler.NewUsersHandler(authSvc)
	actions := handler.NewActionsHandler(auditSvc)
	health := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(300, time.Minute))

	r.GET("/health", health.Health)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", middleware.LoginRateLimiter(), auth.Login)
		v1.POST("/auth/refresh", auth.Refresh)
	}

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		read := authed.Group("", middleware.Require(policy.ReadInventory))
		{
			read.GET("/items", items.List)
			read.GET("/search", items.Search)
			read.GET("/items/:id", items.Get)
			read.GET("/packages", packages.List)
			read.GET("/packages/:id", packages.Get)
			read.GET("/operations", operations.List)
			read.GET("/operations/:id", operations.Get)
			read.GET("/categories", categories.List)
			read.GET("/families", families.List)
			read.GET("/subfamilies", subFamilies.List)
		}

		write := authed.Group("", middleware.Require(policy.WriteInventory))
		{
			write.POST("/items", items.Create)
			write.PUT("/items/:id", items.Update)
			write.DELETE("/items/:id", items.Delete)
			write.POST("/items/bulk-delete", items.BulkDelete)

			write.POST("/packages", packages.Create)
			write.PUT("/packages/:id", packages.Update)
			write.DELETE("/packages/:id", packages.Delete)
			write.POST("/packages/:id/items", packages.AddItems)
			write.POST("/packages/:id/items/remove", packages.RemoveItems)
			write.PUT("/packages/:id/items", packages.ReplaceItems)

			write.POST("/operations", operations.Create)
			write.PUT("/operations/:id", operations.Update)
			write.DELETE("/operations/:id", operations.Delete)
			write.POST("/operations/:id/items", operations.AddItems)
			write.POST("/operations/:id/items/remove", operations.RemoveItems)
			write.POST("/operations/:id/packages", operations.AddPackages)
			write.POST("/operations/:id/packages/remove", operations.RemovePackages)
		}

		reporting := authed.Group("", middleware.Require(policy.ViewReports))
		{
			reporting.GET("/reports/operations/:id", reports.ByOperation)
			reporting.GET("/reports/:type", reports.ByType)
			reporting.GET("/dashboard", reports.Dashboard)
		}

		taxonomy := authed.Group("", middleware.Require(policy.ManageTaxonomy))
		{
			taxonomy.POST("/categories", categories.Create)
			taxonomy.PUT("/categories/:id", categories.Update)
			taxonomy.DELETE("/categories/:id", categories.Delete)
			taxonomy.POST("/families", families.Create)
			taxonomy.PUT("/families/:id", families.Update)
			taxonomy.DELETE("/families/:id", families.Delete)
			taxonomy.POST("/subfamilies", subFamilies.Create)
			taxonomy.PUT("/subfamilies/:id", subFamilies.Update)
			taxonomy.DELETE("/subfamilies/:id", subFamilies.Delete)
		}

		admin := authed.Group("", middleware.Require(policy.ManageUsers))
		{
			admin.POST("/users", users.Create)
			admin.GET("/users", users.List)
			admin.PUT("/users/:id", users.Update)
			admin.DELETE("/users/:id", users.Deactivate)
		}

		audit := authed.Group("", middleware.Require(policy.ViewAuditLog))
		{
			audit.GET("/actions", actions.List)
		}
	}

	return r
}
