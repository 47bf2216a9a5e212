// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package config loads Pathwise configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig()
//  2. Config File: optional YAML file (CONFIG_PATH, config.yaml, /etc/pathwise/config.yaml)
//  3. Environment Variables: explicit mappings such as SERVER_PORT or DUCKDB_PATH
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	db, err := database.New(&cfg.Database)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	TagIndex  TagIndexConfig  `koanf:"tag_index"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Seed      SeedConfig      `koanf:"seed"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for http.Server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings for the course catalogue.
type DatabaseConfig struct {
	Path      string `koanf:"path"` // ":memory:" for an in-process database
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// TagIndexConfig holds Badger settings for the course skill index.
type TagIndexConfig struct {
	Dir      string        `koanf:"dir"`
	InMemory bool          `koanf:"in_memory"`
	GCEvery  time.Duration `koanf:"gc_interval"`
}

// APIConfig holds API pagination settings
type APIConfig struct {
	DefaultPageSize  int           `koanf:"default_page_size"`
	MaxPageSize      int           `koanf:"max_page_size"`
	MaxTagPageSize   int           `koanf:"max_tag_page_size"`
	RecommendTimeout time.Duration `koanf:"recommend_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to log lines.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultCredits       int           `koanf:"default_credits"`
	DefaultMaxDifficulty float64       `koanf:"default_max_difficulty"`
	LookupConcurrency    int           `koanf:"lookup_concurrency"`
	CheckPrerequisites   bool          `koanf:"check_prerequisites"`
	CourseCacheSize      int           `koanf:"course_cache_size"` // 0 disables the lookup cache
	CourseCacheTTL       time.Duration `koanf:"course_cache_ttl"`
}

// BreakerConfig holds circuit breaker settings for catalogue reads.
type BreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxRequests uint32        `koanf:"max_requests"` // allowed in half-open state
	Interval    time.Duration `koanf:"interval"`     // closed-state count reset
	Timeout     time.Duration `koanf:"timeout"`      // open-state duration
	MinRequests uint32        `koanf:"min_requests"`
	TripRatio   float64       `koanf:"trip_ratio"`
}

// SeedConfig controls loading the course corpus at startup.
type SeedConfig struct {
	CorpusDir   string `koanf:"corpus_dir"`
	LoadOnStart bool   `koanf:"load_on_start"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
