// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/pathwise/internal/cache"
	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/recommend"
)

// buildEngineConfig maps the recommend section of the config onto the engine.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultCredits:       cfg.Recommend.DefaultCredits,
		DefaultMaxDifficulty: cfg.Recommend.DefaultMaxDifficulty,
		LookupConcurrency:    cfg.Recommend.LookupConcurrency,
		CheckPrerequisites:   cfg.Recommend.CheckPrerequisites,
	}
}

// initRecommend builds the engine over catalog. Course lookups go through a
// TTL LRU cache unless the configured cache size is zero; the cache is
// returned so main can schedule its sweep, and is nil when disabled.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, catalog database.Catalog, logger zerolog.Logger) (*recommend.Engine, *recommend.Config, *cache.CourseCache, error) {
	engineCfg := buildEngineConfig(cfg)

	var courses recommend.CourseSource = catalog
	var courseCache *cache.CourseCache
	if cfg.Recommend.CourseCacheSize > 0 {
		courseCache = cache.NewCourseCache(catalog, cfg.Recommend.CourseCacheSize, cfg.Recommend.CourseCacheTTL)
		courses = courseCache
		logger.Info().
			Int("size", cfg.Recommend.CourseCacheSize).
			Dur("ttl", cfg.Recommend.CourseCacheTTL).
			Msg("course lookup cache enabled")
	}

	engine, err := recommend.NewEngine(engineCfg, catalog, courses, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info().
		Int("default_credits", engineCfg.DefaultCredits).
		Float64("default_max_difficulty", engineCfg.DefaultMaxDifficulty).
		Int("lookup_concurrency", engineCfg.LookupConcurrency).
		Bool("check_prerequisites", engineCfg.CheckPrerequisites).
		Msg("recommendation engine ready")
	return engine, engineCfg, courseCache, nil
}
