// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Command pathwise is the offline companion to the server. It loads a
// course corpus into the local stores and runs searches and
// recommendations against them without starting HTTP.
//
//	pathwise import --corpus ./corpus
//	pathwise search "cs 225" --skills sql
//	pathwise recommend data-engineer --semester fall --completed "CS 124,CS 128"
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalFlags override the matching configuration values when set.
type globalFlags struct {
	dbPath   string
	tagsDir  string
	logLevel string
}

// app carries the resolved configuration from the root command to its
// subcommands.
type app struct {
	flags globalFlags
	cfg   *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pathwise",
		Short:         "Pathway-based course planning",
		Long:          "Pathwise loads a university course corpus and recommends a semester of\ncourses for a career pathway.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.flags.dbPath, "db", "", "DuckDB catalogue path (default from DUCKDB_PATH or config)")
	f.StringVar(&a.flags.tagsDir, "tags-dir", "", "Badger tag index directory (default from TAG_INDEX_DIR or config)")
	f.StringVar(&a.flags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(newImportCmd(a), newSearchCmd(a), newRecommendCmd(a))
	return root
}

func (a *app) loadConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.flags.dbPath != "" {
		cfg.Database.Path = a.flags.dbPath
	}
	if a.flags.tagsDir != "" {
		cfg.TagIndex.Dir = a.flags.tagsDir
		cfg.TagIndex.InMemory = false
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	// Results go to stdout as JSON; keep stderr quiet unless asked.
	logging.SetLevelString(a.flags.logLevel)
	a.cfg = cfg
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
