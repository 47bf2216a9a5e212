// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

/*
Package main is the entry point for the Pathwise HTTP server.

Pathwise serves a university course catalogue, a set of career pathways
and a recommendation endpoint that picks a single-semester course load for
a pathway from the student's completed courses and preferences.

# Startup

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Catalogue: DuckDB, optionally behind a gobreaker circuit breaker
 4. Tag index: Badger, persistent or in-memory
 5. Seed: optional corpus import when SEED_LOAD_ON_START=true
 6. Engine: recommendation engine over a TTL LRU course cache
 7. HTTP: chi router with CORS, httprate and Prometheus middleware
 8. Supervision: suture v4 tree running the HTTP server, tag index GC
    and course cache sweep

The tree looks like this:

	RootSupervisor ("pathwise")
	├── DataSupervisor ("data-layer")
	│   ├── TagIndexGCService (persistent tag index only)
	│   └── CacheSweepService (course cache enabled only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Common environment variables:

	SERVER_PORT=8000
	DUCKDB_PATH=/data/pathwise.duckdb
	TAG_INDEX_DIR=/data/tags
	CORPUS_DIR=/data/corpus
	SEED_LOAD_ON_START=true
	LOG_LEVEL=info
	LOG_FORMAT=json
	CORS_ORIGINS=http://localhost:5173,http://localhost:3000

A YAML file named by CONFIG_PATH, or config.yaml in the working directory,
is loaded below the environment.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
to ten seconds, the tag index and catalogue are then closed.
*/
package main
