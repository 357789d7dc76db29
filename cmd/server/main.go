package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"basegraph.app/backoffice/common/id"
	"basegraph.app/backoffice/common/logger"
	"basegraph.app/backoffice/common/otel"
	"basegraph.app/backoffice/core/config"
	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/audit"
	"basegraph.app/backoffice/internal/http/middleware"
	httprouter "basegraph.app/backoffice/internal/http/router"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/metrics"
	"basegraph.app/backoffice/internal/queue"
	"basegraph.app/backoffice/internal/service"
	"basegraph.app/backoffice/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "backoffice starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var producer queue.Producer
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}

		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.AuditStream)

		producer = queue.NewRedisProducer(redisClient, cfg.Redis.AuditStream, slog.Default())
		defer producer.Close()
	} else {
		slog.InfoContext(ctx, "redis disabled, audit events go to postgres only")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	stores := store.NewStores(database.Conn())
	recorder := audit.NewRecorder(stores.Audit(), producer, m)

	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		identity.NewWorkOSProvider(cfg.WorkOS),
		recorder,
		m,
		cfg.Listing.LastLoginConcurrency,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, m, reg)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, m *metrics.Metrics, reg *prometheus.Registry) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → request id → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(m))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
		Gatherer:     reg,
	})

	return router
}

const banner = `
 ____    _    ____ _  _____  _____ _____ ___ ____ _____
| __ )  / \  / ___| |/ / _ \|  ___|  ___|_ _/ ___| ____|
|  _ \ / _ \| |   | ' / | | | |_  | |_   | | |   |  _|
| |_) / ___ \ |___| . \ |_| |  _| |  _|  | | |___| |___
|____/_/   \_\____|_|\_\___/|_|   |_|   |___\____|_____|
`
