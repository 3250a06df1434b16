package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessusecases "atrium/internal/application/access/usecases"
	billingusecases "atrium/internal/application/billing/usecases"
	companyusecases "atrium/internal/application/company/usecases"
	licenseusecases "atrium/internal/application/license/usecases"
	"atrium/internal/infrastructure/config"
	"atrium/internal/infrastructure/pubsub"
	"atrium/internal/infrastructure/repository"
	"atrium/internal/interfaces/http/handlers"
	"atrium/internal/interfaces/http/middleware"
	shareddb "atrium/internal/shared/db"
	"atrium/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	accessHandler  *handlers.AccessHandler
	companyHandler *handlers.CompanyHandler
	billingHandler *handlers.BillingHandler
	licenseHandler *handlers.LicenseHandler
	planHandler    *handlers.PlanHandler
	logger         logger.Interface
	allowedOrigins []string
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	companyRepo := repository.NewCompanyRepository(db, log)
	licenseRepo := repository.NewLicenseRepository(db, log)
	planRepo := repository.NewPlanRepository(db, log)
	snapshotRepo := repository.NewPartnerBillingSnapshotRepository(db, log)

	eventBus := pubsub.NewRedisLicenseEventBus(redisClient, log)
	txMgr := shareddb.NewTransactionManager(db)

	platformID := cfg.Platform.CompanyID

	evaluateAccessUC := accessusecases.NewEvaluateCompanyAccessUseCase(companyRepo, licenseRepo, platformID, log)
	setParentBlockUC := companyusecases.NewSetParentBlockUseCase(companyRepo, eventBus, txMgr, log)
	recomputeBillingUC := billingusecases.NewRecomputePartnerBillingUseCase(companyRepo, licenseRepo, planRepo, snapshotRepo, platformID, log)
	billingReportUC := billingusecases.NewGetPartnerBillingReportUseCase(companyRepo, licenseRepo, planRepo, platformID, log)
	renewLicenseUC := licenseusecases.NewRenewLicenseUseCase(licenseRepo, txMgr, platformID, log)
	listPlansUC := licenseusecases.NewListActivePlansUseCase(planRepo, log)

	return &Router{
		engine:         engine,
		accessHandler:  handlers.NewAccessHandler(evaluateAccessUC),
		companyHandler: handlers.NewCompanyHandler(setParentBlockUC),
		billingHandler: handlers.NewBillingHandler(recomputeBillingUC, billingReportUC),
		licenseHandler: handlers.NewLicenseHandler(renewLicenseUC),
		planHandler:    handlers.NewPlanHandler(listPlansUC),
		logger:         log,
		allowedOrigins: cfg.Server.AllowedOrigins,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	{
		companies := api.Group("/companies")
		{
			companies.GET("/:id/access", r.accessHandler.CheckAccess)
			companies.PUT("/:id/parent-block", r.companyHandler.SetParentBlock)
		}

		billing := api.Group("/billing")
		{
			billing.POST("/partner-snapshots/recompute", r.billingHandler.RecomputeSnapshots)
			billing.GET("/partner-report", r.billingHandler.PartnerReport)
		}

		licenses := api.Group("/licenses")
		{
			licenses.POST("/:id/renew", r.licenseHandler.RenewLicense)
		}

		api.GET("/plans", r.planHandler.ListPlans)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
