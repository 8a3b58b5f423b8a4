package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/wolfman30/maldives-travel-platform/internal/api/router"
	"github.com/wolfman30/maldives-travel-platform/internal/app/bootstrap"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/internal/wizard"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting maldives travel API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, wizardMetrics, notifyMetrics := setupMetrics()

	sqlDB := openSQL(ctx, cfg.DatabaseURL, logger)
	if sqlDB != nil {
		defer sqlDB.Close()
	}
	pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if pool != nil {
		defer pool.Close()
	}

	fallback, err := catalog.Fallback()
	if err != nil {
		logger.Error("embedded resort catalog is invalid", "error", err)
		os.Exit(1)
	}
	var rows catalog.RowSource
	if sqlDB != nil {
		rows = catalog.NewStore(sqlDB)
	}
	resorts := catalog.Load(ctx, rows, fallback, logger.Component("catalog"))

	var repo inquiries.Repository = inquiries.NewInMemoryRepository()
	if pool != nil {
		repo = inquiries.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, inquiries are kept in memory")
	}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	slots := bootstrap.BuildDraftSlots(redisClient, cfg, logger)

	pipeline, err := setupNotifications(ctx, cfg, pool, notifyMetrics, logger)
	if err != nil {
		logger.Error("failed to set up inquiry notifications", "error", err)
		os.Exit(1)
	}

	gateway := wizard.NewGateway(repo, pipeline.publisher(), logger.Component("gateway"), wizardMetrics)
	service := wizard.NewService(wizard.ServiceConfig{
		Slots:    slots,
		Catalog:  resorts,
		Gateway:  gateway,
		Location: cfg.Location(),
		Logger:   logger.Component("wizard"),
		Metrics:  wizardMetrics,
	})

	handler := router.New(&router.Config{
		Logger:             logger,
		WizardHandler:      wizard.NewHandler(service, logger),
		CatalogHandler:     catalog.NewHandler(resorts, logger),
		InquiryHandler:     inquiries.NewHandler(repo, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		SecureCookies:      cfg.Env != "development",
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if pipeline.worker != nil {
		pipeline.worker.Start(gctx)
		g.Go(func() error {
			pipeline.worker.Wait()
			return nil
		})
	}
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
