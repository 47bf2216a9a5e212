// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"context"
	"errors"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/corpus"
	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

// seedCorpus imports the corpus directory into the stores when seeding is
// enabled. tags may be nil, in which case tagged courses are not loaded.
func seedCorpus(ctx context.Context, cfg *config.SeedConfig, db *database.DB, tags *tagindex.Index) error {
	if !cfg.LoadOnStart {
		logging.Info().Msg("Corpus seeding disabled (SEED_LOAD_ON_START=false)")
		return nil
	}
	if cfg.CorpusDir == "" {
		return errors.New("seed.load_on_start is set but seed.corpus_dir is empty")
	}

	var tagWriter corpus.TagWriter
	if tags != nil {
		tagWriter = tags
	}

	stats, err := corpus.NewImporter(db, tagWriter, false).ImportDir(ctx, cfg.CorpusDir)
	if err != nil {
		return err
	}

	logging.Info().
		Str("dir", cfg.CorpusDir).
		Int("courses", stats.Courses).
		Int("pathways", stats.Pathways).
		Int("tagged", stats.Tagged).
		Int("skipped", stats.Skipped).
		Int("defaulted_credits", stats.DefaultedCredits).
		Dur("duration", stats.Duration()).
		Msg("Corpus seeded")
	return nil
}
