// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pathwise/internal/corpus"
)

func newImportCmd(a *app) *cobra.Command {
	var flags struct {
		dir    string
		dryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a course corpus into the catalogue and tag index",
		Long: "Reads courses.json, a pathways file (JSON or YAML) and tagged_courses.json\n" +
			"from the corpus directory and upserts them. Nothing is written if any\n" +
			"file fails to decode.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := flags.dir
			if dir == "" {
				dir = a.cfg.Seed.CorpusDir
			}
			if dir == "" {
				return errors.New("--corpus is required (or set CORPUS_DIR)")
			}

			s, err := a.openStores(true)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := corpus.NewImporter(s.db, s.tags, flags.dryRun).ImportDir(cmd.Context(), dir)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.dir, "corpus", "", "Corpus directory (default from CORPUS_DIR)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Decode and count records without writing")
	return cmd
}
