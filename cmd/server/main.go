// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/pathwise/internal/api"
	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/supervisor"
	"github.com/tomtom215/pathwise/internal/supervisor/services"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("tag_index_dir", cfg.TagIndex.Dir).
		Bool("tag_index_in_memory", cfg.TagIndex.InMemory).
		Msg("Starting Pathwise")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	// The server still answers catalogue requests without the tag index;
	// skill search and the tag endpoints are disabled instead.
	tags, err := tagindex.Open(&cfg.TagIndex)
	if err != nil {
		logging.Warn().Err(err).Msg("Tag index unavailable, skill search disabled")
		tags = nil
	} else {
		defer func() {
			if err := tags.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing tag index")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedCorpus(ctx, &cfg.Seed, db, tags); err != nil {
		// Fatal skips deferred closes, so release the stores first.
		if tags != nil {
			_ = tags.Close()
		}
		_ = db.Close()
		logging.Fatal().Err(err).Str("dir", cfg.Seed.CorpusDir).Msg("Failed to seed corpus")
	}

	var catalog database.Catalog = db
	if cfg.Breaker.Enabled {
		catalog = database.NewBreaker(db, &cfg.Breaker)
		logging.Info().
			Float64("trip_ratio", cfg.Breaker.TripRatio).
			Dur("open_timeout", cfg.Breaker.Timeout).
			Msg("Catalogue circuit breaker enabled")
	}

	engine, engineCfg, courseCache, err := initRecommend(cfg, catalog, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	deps := api.Deps{
		Catalog:  catalog,
		Engine:   engine,
		Defaults: engineCfg.DefaultPreferences(),
		Version:  version,
	}
	if tags != nil {
		deps.Tags = tags
	}
	handler, err := api.NewHandler(cfg, deps)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*). Set explicit origins in production.")
	}

	middleware := api.NewChiMiddleware(api.MiddlewareConfigFrom(&cfg.Security))
	router := api.NewRouter(handler, middleware)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if tags != nil && !cfg.TagIndex.InMemory {
		tree.AddDataService(services.NewTagIndexGCService(tags, cfg.TagIndex.GCEvery))
	}
	if courseCache != nil {
		tree.AddDataService(services.NewCacheSweepService(courseCache, cfg.Recommend.CourseCacheTTL))
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", srv.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one value when the tree stops.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
		cancel()
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Pathwise stopped")
}
