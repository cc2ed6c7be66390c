package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tnpcell/placement-office-api/api/swagger"
	"github.com/tnpcell/placement-office-api/internal/handler"
	"github.com/tnpcell/placement-office-api/internal/middleware"
	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/internal/repository"
	"github.com/tnpcell/placement-office-api/internal/service"
	"github.com/tnpcell/placement-office-api/pkg/cache"
	"github.com/tnpcell/placement-office-api/pkg/config"
	"github.com/tnpcell/placement-office-api/pkg/database"
	"github.com/tnpcell/placement-office-api/pkg/logger"
	corsmiddleware "github.com/tnpcell/placement-office-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tnpcell/placement-office-api/pkg/middleware/requestid"
	"github.com/tnpcell/placement-office-api/pkg/storage"
)

// @title Placement Office API
// @version 1.0.0
// @description Placement ledger, public content and calendar publication service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	calendarRepo := repository.NewPublicCalendarRepository(db)
	publicInfoRepo := repository.NewPublicInfoRepository(db)
	tipRepo := repository.NewTipRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	cacheEnabled := cfg.Analytics.CacheEnabled && redisClient != nil
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheEnabled)

	analyticsSvc := service.NewAnalyticsService(placementRepo, cacheSvc, cfg.Analytics.CacheTTL, logr)
	placementSvc := service.NewPlacementService(placementRepo, analyticsSvc, validate, logr)
	publicationSvc := service.NewPublicationService(calendarRepo, cacheSvc, metricsSvc, logr)
	publicInfoSvc := service.NewPublicInfoService(publicInfoRepo, validate, logr)
	tipSvc := service.NewTipService(tipRepo, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(analyticsSvc, fileStore, signer, service.ExportConfig{
			APIPrefix:  cfg.APIPrefix,
			ResultTTL:  cfg.Exports.SignedURLTTL,
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
		}, logr)
		exportSvc.Start(ctx)
		defer exportSvc.Stop()
		go runExportCleanup(ctx, exportSvc, cfg.Exports.CleanupInterval, logr)
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	placementHandler := handler.NewPlacementHandler(placementSvc)
	calendarHandler := handler.NewCalendarHandler(publicationSvc)
	publicInfoHandler := handler.NewPublicInfoHandler(publicInfoSvc)
	tipHandler := handler.NewTipHandler(tipSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Unauthenticated surface: login plus the public read-only content.
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	public := api.Group("/public")
	{
		public.GET("/calendar", calendarHandler.ListPublic)
		public.GET("/info", publicInfoHandler.ListPublic)
		public.GET("/tips", tipHandler.ListPublic)
	}

	staff := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleCoordinator}
	admins := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}

	placements := api.Group("/placements", middleware.JWT(authSvc), middleware.RequireRoles(staff...))
	{
		placements.GET("", placementHandler.List)
		placements.GET("/:id", placementHandler.Get)
		placements.POST("", middleware.Audit(userRepo, models.AuditActionPlacementWrite, "placement"), placementHandler.Create)
		placements.PUT("/:id", middleware.Audit(userRepo, models.AuditActionPlacementWrite, "placement"), placementHandler.Update)
		placements.DELETE("/:id", middleware.Audit(userRepo, models.AuditActionPlacementWrite, "placement"), placementHandler.Delete)
		placements.POST("/:id/activate", middleware.Audit(userRepo, models.AuditActionPlacementWrite, "placement"), placementHandler.Activate)
	}

	// Derived statistics are public reads; only the runtime snapshot is gated.
	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", analyticsHandler.Summary)
		analytics.GET("/top-companies", analyticsHandler.TopCompanies)
		analytics.GET("/offers", analyticsHandler.Offers)
		analytics.GET("/system", middleware.JWT(authSvc), middleware.RequireRoles(admins...), analyticsHandler.System)
	}

	calendar := api.Group("/calendar", middleware.JWT(authSvc), middleware.RequireRoles(staff...))
	{
		calendar.GET("/:activityId", calendarHandler.Get)
		calendar.POST("/publish", middleware.Audit(userRepo, models.AuditActionCalendarPublish, "activity"), calendarHandler.Publish)
		calendar.POST("/:activityId/unpublish", middleware.Audit(userRepo, models.AuditActionCalendarRetract, "activity"), calendarHandler.Unpublish)
		calendar.DELETE("/:activityId", middleware.RequireRoles(admins...), middleware.Audit(userRepo, models.AuditActionCalendarRetract, "activity"), calendarHandler.Delete)
	}

	info := api.Group("/info", middleware.JWT(authSvc), middleware.RequireRoles(staff...))
	{
		info.GET("", publicInfoHandler.List)
		info.GET("/:id", publicInfoHandler.Get)
		info.POST("", middleware.Audit(userRepo, models.AuditActionPublicInfoWrite, "public_info"), publicInfoHandler.Create)
		info.PUT("/:id", middleware.Audit(userRepo, models.AuditActionPublicInfoWrite, "public_info"), publicInfoHandler.Update)
		info.DELETE("/:id", middleware.Audit(userRepo, models.AuditActionPublicInfoWrite, "public_info"), publicInfoHandler.Delete)
	}

	tips := api.Group("/tips", middleware.JWT(authSvc), middleware.RequireRoles(staff...))
	{
		tips.GET("", tipHandler.List)
		tips.GET("/:id", tipHandler.Get)
		tips.POST("", middleware.Audit(userRepo, models.AuditActionTipWrite, "tip"), tipHandler.Create)
		tips.PUT("/:id", middleware.Audit(userRepo, models.AuditActionTipWrite, "tip"), tipHandler.Update)
		tips.DELETE("/:id", middleware.Audit(userRepo, models.AuditActionTipWrite, "tip"), tipHandler.Delete)
	}

	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		exports := api.Group("/exports")
		{
			exports.GET("/download/:token", exportHandler.Download)
			exports.POST("", middleware.JWT(authSvc), middleware.RequireRoles(staff...),
				middleware.Audit(userRepo, models.AuditActionExportRequested, "export"), exportHandler.Request)
			exports.GET("/:id", middleware.JWT(authSvc), middleware.RequireRoles(staff...), exportHandler.Status)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func runExportCleanup(ctx context.Context, svc *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := svc.Cleanup(0)
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				logr.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}
