package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/config"
	"github.com/acrsolucoedig-spec/cellparts/internal/db"
	"github.com/acrsolucoedig-spec/cellparts/internal/dedup"
	"github.com/acrsolucoedig-spec/cellparts/internal/events"
	httpapi "github.com/acrsolucoedig-spec/cellparts/internal/http"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/store"
	"github.com/acrsolucoedig-spec/cellparts/internal/tracking"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront-gateway] ", log.LstdFlags|log.Lmicroseconds)

	// Base HTTP client (shared)
	sharedHTTP := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	// Upstream clients
	backendBase := clients.NewClient("backend", cfg.BackendURL, sharedHTTP)
	viacepBase := clients.NewClient("viacep", cfg.ViaCepURL, sharedHTTP)

	// Typed clients
	cart := clients.NewCartClient(backendBase)
	order := clients.NewOrderClient(backendBase)
	product := clients.NewProductClient(backendBase)
	review := clients.NewReviewClient(backendBase)
	trackingClient := clients.NewTrackingClient(backendBase)
	viacep := clients.NewViaCepClient(viacepBase)

	healthChecks := []clients.HealthCheck{
		{Name: "backend", Client: backendBase, Path: "/health"},
	}
	if cfg.ViaCepURL != cfg.BackendURL {
		healthChecks = append(healthChecks, clients.HealthCheck{Name: "viacep", Client: viacepBase, Path: "/health"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := httpapi.Deps{
		Logger:       logger,
		Cfg:          cfg,
		Cart:         cart,
		Order:        order,
		Product:      product,
		Review:       review,
		Tracking:     trackingClient,
		ViaCep:       viacep,
		HealthChecks: healthChecks,
	}

	if cfg.TrackingWatchEnabled {
		watcher, cleanup := startTrackingWatcher(ctx, cfg, trackingClient, logger)
		defer cleanup()
		deps.Watcher = watcher
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Printf("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}

// startTrackingWatcher wires the watch store, the dedup checkpoints, RabbitMQ and the
// poll loop. Any setup failure is fatal: the flag asks for the watcher explicitly.
func startTrackingWatcher(ctx context.Context, cfg config.Config, tc *clients.TrackingClient, logger *log.Logger) (*tracking.Watcher, func()) {
	if cfg.DatabaseDSN == "" {
		logger.Fatalf("TRACKING_WATCH_ENABLED requires DATABASE_DSN")
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("migrations: %v", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db pool: %v", err)
	}
	sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db open: %v", err)
	}

	rabbitConn := events.MustDial(cfg.RabbitMQURL, logger)
	pub, err := events.NewPublisher(rabbitConn, events.ServiceName)
	if err != nil {
		logger.Fatalf("publisher: %v", err)
	}

	watcher := tracking.NewWatcher(tc, store.NewWatchStore(pool), pub, logger, tracking.WatcherOptions{
		Interval:    cfg.TrackingPollInterval,
		Concurrency: cfg.TrackingPollConcurrency,
	})

	handler := events.OrderCreatedHandler(dedup.NewStore(sqlDB), watcher, logger, events.OrderCreatedConsumerName)
	if err := events.StartOrderCreatedConsumer(ctx, rabbitConn, handler, logger); err != nil {
		logger.Fatalf("start consumer: %v", err)
	}

	// The watcher has no end user; it calls the backend with the service token.
	go watcher.Run(middleware.WithBearerToken(ctx, cfg.BackendServiceToken))

	cleanup := func() {
		_ = pub.Close()
		_ = rabbitConn.Close()
		_ = sqlDB.Close()
		pool.Close()
	}
	return watcher, cleanup
}
