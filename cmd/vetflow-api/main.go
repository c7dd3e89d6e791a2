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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/matheusrsantos97-lgtm/VetFlow/api/swagger"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/handler"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/middleware"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/repository"
	"github.com/matheusrsantos97-lgtm/VetFlow/internal/service"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/config"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/export"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/genai"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/logger"
	corsmiddleware "github.com/matheusrsantos97-lgtm/VetFlow/pkg/middleware/cors"
	reqidmiddleware "github.com/matheusrsantos97-lgtm/VetFlow/pkg/middleware/requestid"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/validation"
)

// @title VetFlow API
// @version 1.0.0
// @description Clinical report drafting and shift timesheets for veterinary clinics
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	backend, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open storage backend", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer backend.close()

	store := repository.NewInstrumentedStore(
		repository.NewNamespacedStore(cfg.Storage.KeyPrefix, backend.store),
		metricsSvc,
	)
	userRepo := repository.NewUserRepository(store, logr)
	monthRepo := repository.NewMonthRepository(store, logr)

	validate, err := validation.New()
	if err != nil {
		logr.Fatal("failed to init validator", zap.Error(err))
	}

	generator := newReportGenerator(ctx, cfg, logr)
	reportSvc := service.NewReportService(generator, metricsSvc, validate, logr, cfg.Share.BaseURL)
	exportSvc := service.NewExportService(service.ExportConfig{ReportTitle: cfg.Timesheet.ReportTitle}, logr, export.NewCSVExporter(), export.NewPDFExporter())
	timesheetSvc := service.NewTimesheetService(monthRepo, exportSvc, validate, logr)
	authSvc := service.NewAuthService(userRepo, reportSvc, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	timesheetHandler := handler.NewTimesheetHandler(timesheetSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, backend.ping)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(authSvc))
	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/profile", authHandler.UpdateProfile)

	timesheets := secured.Group("/timesheets")
	timesheets.GET("", timesheetHandler.List)
	timesheets.POST("", timesheetHandler.Create)
	timesheets.GET("/:id", timesheetHandler.Get)
	timesheets.DELETE("/:id", timesheetHandler.Delete)
	timesheets.PUT("/:id/sheets/:sheet/days/:date/entry", timesheetHandler.SetEntry)
	timesheets.PUT("/:id/sheets/:sheet/days/:date/exit", timesheetHandler.SetExit)
	timesheets.GET("/:id/export/pdf", timesheetHandler.ExportPDF)
	timesheets.GET("/:id/export/csv", timesheetHandler.ExportCSV)

	reports := secured.Group("/reports")
	reports.GET("/options", reportHandler.Options)
	reports.GET("/session", reportHandler.Session)
	reports.DELETE("/session", reportHandler.Reset)
	reports.PUT("/session/patient", reportHandler.UpdatePatient)
	reports.PUT("/session/clinical", reportHandler.UpdateClinical)
	reports.PUT("/session/type", reportHandler.SetReportType)
	reports.PUT("/session/text", reportHandler.EditText)
	reports.POST("/generate", reportHandler.Generate)
	reports.POST("/refine", reportHandler.Refine)
	reports.GET("/share", reportHandler.Share)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newReportGenerator(ctx context.Context, cfg *config.Config, logr *zap.Logger) *service.ReportGenerator {
	genCfg := service.GeneratorConfig{
		MaxOutputTokens:    cfg.Gemini.MaxOutputTokens,
		TutorTemperature:   cfg.Gemini.TutorTemperature,
		MedicalTemperature: cfg.Gemini.MedicalTemperature,
		RefineTemperature:  cfg.Gemini.RefineTemperature,
	}
	client, err := genai.NewClient(ctx, genai.Options{
		BaseURL:    cfg.Gemini.BaseURL,
		APIVersion: cfg.Gemini.APIVersion,
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		Timeout:    cfg.Gemini.Timeout,
		Logger:     logr,
	})
	if err != nil {
		logr.Warn("report generation disabled", zap.Error(err))
		return service.NewReportGenerator(nil, genCfg, logr)
	}
	return service.NewReportGenerator(client, genCfg, logr)
}
