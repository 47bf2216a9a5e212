// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

// stores holds the opened catalogue and tag index. tags is nil when the
// index could not be opened and was optional.
type stores struct {
	db   *database.DB
	tags *tagindex.Index
}

// openStores opens the catalogue and the tag index. With requireTags unset a
// tag index failure is logged and the command continues without it.
func (a *app) openStores(requireTags bool) (*stores, error) {
	db, err := database.New(&a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open catalogue %s: %w", a.cfg.Database.Path, err)
	}

	tags, err := tagindex.Open(&a.cfg.TagIndex)
	if err != nil {
		if requireTags {
			_ = db.Close()
			return nil, fmt.Errorf("open tag index %s: %w", a.cfg.TagIndex.Dir, err)
		}
		logging.Warn().Err(err).Str("dir", a.cfg.TagIndex.Dir).Msg("tag index unavailable, skipping skills")
		tags = nil
	}
	return &stores{db: db, tags: tags}, nil
}

func (s *stores) Close() error {
	var errs []error
	if s.tags != nil {
		errs = append(errs, s.tags.Close())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
