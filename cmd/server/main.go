package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/gradefolio/gradefolio-api/api/swagger"
	"github.com/gradefolio/gradefolio-api/internal/handler"
	"github.com/gradefolio/gradefolio-api/internal/middleware"
	"github.com/gradefolio/gradefolio-api/internal/repository"
	"github.com/gradefolio/gradefolio-api/internal/service"
	"github.com/gradefolio/gradefolio-api/pkg/cache"
	"github.com/gradefolio/gradefolio-api/pkg/config"
	"github.com/gradefolio/gradefolio-api/pkg/database"
	"github.com/gradefolio/gradefolio-api/pkg/export"
	"github.com/gradefolio/gradefolio-api/pkg/logger"
	corsmiddleware "github.com/gradefolio/gradefolio-api/pkg/middleware/cors"
	reqidmiddleware "github.com/gradefolio/gradefolio-api/pkg/middleware/requestid"
)

// @title Gradefolio API
// @version 1.0.0
// @description Grade tracking, GPA/CGPA analytics and target planning
// @BasePath /api/v1
// @schemes http

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
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, running without cache", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled && redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	peerRepo := repository.NewPeerRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	calculatorSvc := service.NewCalculatorService(validate, logr, cacheSvc, metricsSvc, cfg.Grading)
	conversionSvc := service.NewConversionService(validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, validate, logr)
	peerSvc := service.NewPeerService(peerRepo, sessionRepo, validate, logr, cfg.Grading.RoundTo)
	exportSvc := service.NewExportService(export.NewPDFExporter(), export.NewCSVExporter(), export.NewXLSXExporter(), validate, logr, cfg.Grading.RoundTo)

	authHandler := handler.NewAuthHandler(authSvc)
	calculatorHandler := handler.NewCalculatorHandler(calculatorSvc)
	conversionHandler := handler.NewConversionHandler(conversionSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	peerHandler := handler.NewPeerHandler(peerSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		api.POST("/convert-scale", conversionHandler.Convert)
		api.GET("/templates", conversionHandler.Templates)

		calculator := api.Group("/calculator")
		{
			calculator.POST("/summary", calculatorHandler.Summary)
			calculator.POST("/statistics", calculatorHandler.Statistics)
			calculator.POST("/target", calculatorHandler.Target)
			calculator.POST("/semester-target", calculatorHandler.SemesterTarget)

			charts := calculator.Group("/charts")
			{
				charts.POST("/timeline", calculatorHandler.Timeline)
				charts.POST("/distribution", calculatorHandler.Distribution)
				charts.POST("/credits", calculatorHandler.Credits)
				charts.POST("/comparison", calculatorHandler.Comparison)
				charts.POST("/top-courses", calculatorHandler.TopCourses)
				charts.POST("/progress", calculatorHandler.Progress)
			}
		}

		exportGroup := api.Group("/export")
		{
			exportGroup.POST("/pdf", exportHandler.PDF)
			exportGroup.POST("/csv", exportHandler.CSV)
			exportGroup.POST("/xlsx", exportHandler.XLSX)
		}

		importGroup := api.Group("/import")
		{
			importGroup.POST("/xlsx", exportHandler.ImportXLSX)
			importGroup.POST("/csv", exportHandler.ImportCSV)
		}

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/session", sessionHandler.Get)
			protected.POST("/session", sessionHandler.Save)
			protected.DELETE("/session", sessionHandler.Delete)

			protected.GET("/peers", peerHandler.List)
			protected.POST("/peers", peerHandler.Create)
			protected.DELETE("/peers/:id", peerHandler.Delete)
			protected.GET("/peers/comparison", peerHandler.Comparison)
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("failed to close redis", "error", err)
	}
}
