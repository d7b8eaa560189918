// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/pizzarec/internal/api"
	"github.com/tomtom215/pizzarec/internal/config"
	"github.com/tomtom215/pizzarec/internal/database"
	"github.com/tomtom215/pizzarec/internal/logging"
	"github.com/tomtom215/pizzarec/internal/middleware"
	"github.com/tomtom215/pizzarec/internal/supervisor"
	"github.com/tomtom215/pizzarec/internal/supervisor/services"
)

// routerStartTimeout bounds the wait for the order router before HTTP starts.
const routerStartTimeout = 10 * time.Second

// latencySamples is the ring size of the per-route latency tracker.
const latencySamples = 2048

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Bool("breaker_enabled", cfg.Breaker.Enabled).
		Msg("Starting pizzarec")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer closeDatabase(db)
	logging.Info().Msg("Database initialized")

	rec, err := initRecommend(cfg, db, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	ord, err := initOrders(cfg, db)
	if err != nil {
		return err
	}
	defer ord.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return err
	}

	if cfg.Recommend.RefreshInterval > 0 {
		tree.AddDataService(services.NewIndexRefreshService(rec.Engine, cfg.Recommend.RefreshInterval, logging.Logger()))
	}

	routerSvc := services.NewRouterService(ord.Router, logging.Logger())
	tree.AddMessagingService(routerSvc)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// gochannel does not persist messages, so HTTP only starts accepting
	// orders once the router has subscribed.
	select {
	case <-routerSvc.Running():
		logging.Info().Msg("Order router running")
	case <-time.After(routerStartTimeout):
		cancel()
		<-errCh
		return errors.New("order router did not start in time")
	case <-ctx.Done():
		logSupervisorExit(<-errCh)
		return nil
	}

	latency := middleware.NewLatencyTracker(latencySamples, middleware.DefaultSlowRequestThreshold)
	handler, err := api.NewHandler(api.Deps{
		Engine:  rec.Engine,
		Store:   rec.Store,
		DB:      db,
		Orders:  ord.Publisher,
		Breaker: rec.Breaker,
		Latency: latency,
	})
	if err != nil {
		cancel()
		<-errCh
		return err
	}

	chiMiddleware := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, chiMiddleware).SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	// Serve sends exactly one result once the tree has stopped.
	logSupervisorExit(<-errCh)

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	return nil
}

func logSupervisorExit(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}
}

func closeDatabase(db *database.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Checkpoint before close failed")
	}
	if err := db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
