// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package corpus loads the course pipeline's output into the catalogue store
// and the tag index.
//
// A corpus directory holds:
//
//	courses.json          object keyed by course id (required)
//	pathways.json|.yaml   pathway list, optionally wrapped in {"pathways": [...]}
//	tagged_courses.json   course skill tags
//
// Credit hours missing from a course default to 3. Re-importing the same
// corpus is idempotent.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/models"
)

// CatalogWriter persists courses and pathways.
type CatalogWriter interface {
	UpsertCourses(ctx context.Context, courses []models.Course) error
	UpsertPathways(ctx context.Context, pathways []models.Pathway) error
}

// TagWriter persists course skill tags.
type TagWriter interface {
	PutMany(ctx context.Context, tagged []models.TaggedCourse) error
}

// Importer loads a corpus into a catalogue and an optional tag index.
type Importer struct {
	catalog CatalogWriter
	tags    TagWriter
	dryRun  bool

	mu      sync.Mutex
	running bool
}

// NewImporter creates an importer. tags may be nil to skip tag loading.
// With dryRun set, files are decoded and counted but nothing is written.
func NewImporter(catalog CatalogWriter, tags TagWriter, dryRun bool) *Importer {
	return &Importer{catalog: catalog, tags: tags, dryRun: dryRun}
}

var (
	pathwayCandidates = []string{"pathways.json", "pathways.yaml", "pathways.yml", "career_pathways.json"}
	taggedCandidates  = []string{"tagged_courses.json"}
)

// DiscoverFiles locates the corpus files in dir.
func DiscoverFiles(dir string) (Files, error) {
	files := Files{Courses: filepath.Join(dir, "courses.json")}
	if _, err := os.Stat(files.Courses); err != nil {
		return Files{}, fmt.Errorf("courses file: %w", err)
	}
	files.Pathways = firstExisting(dir, pathwayCandidates)
	files.Tagged = firstExisting(dir, taggedCandidates)
	return files, nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ImportDir discovers and imports the corpus in dir.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*Stats, error) {
	files, err := DiscoverFiles(dir)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, files)
}

// Import decodes every file before writing anything, so a malformed file
// leaves the stores untouched.
func (i *Importer) Import(ctx context.Context, files Files) (*Stats, error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, errors.New("import already in progress")
	}
	i.running = true
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		i.running = false
		i.mu.Unlock()
	}()

	stats := &Stats{StartTime: time.Now(), DryRun: i.dryRun}
	defer func() { stats.EndTime = time.Now() }()

	courses, err := decodeFile(files.Courses, func(r io.Reader) ([]models.Course, error) {
		return DecodeCourses(r, stats)
	})
	if err != nil {
		return stats, err
	}

	var pathways []models.Pathway
	if files.Pathways != "" {
		pathways, err = decodeFile(files.Pathways, func(r io.Reader) ([]models.Pathway, error) {
			return DecodePathways(r, FormatForPath(files.Pathways), stats)
		})
		if err != nil {
			return stats, err
		}
	} else {
		logging.Warn().Msg("No pathways file in corpus")
	}

	var tagged []models.TaggedCourse
	if files.Tagged != "" && i.tags != nil {
		tagged, err = decodeFile(files.Tagged, func(r io.Reader) ([]models.TaggedCourse, error) {
			return DecodeTagged(r, stats)
		})
		if err != nil {
			return stats, err
		}
	}

	stats.Courses = len(courses)
	stats.Pathways = len(pathways)
	stats.Tagged = len(tagged)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if !i.dryRun {
		if err := i.write(ctx, courses, pathways, tagged); err != nil {
			return stats, err
		}
	}

	logging.Info().
		Int("courses", stats.Courses).
		Int("pathways", stats.Pathways).
		Int("tagged", stats.Tagged).
		Int("skipped", stats.Skipped).
		Int("defaulted_credits", stats.DefaultedCredits).
		Int("dropped_prereqs", stats.DroppedPrereqs).
		Bool("dry_run", i.dryRun).
		Dur("duration", stats.Duration()).
		Msg("Corpus import completed")

	return stats, nil
}

func (i *Importer) write(ctx context.Context, courses []models.Course, pathways []models.Pathway, tagged []models.TaggedCourse) error {
	if err := i.catalog.UpsertCourses(ctx, courses); err != nil {
		return fmt.Errorf("write courses: %w", err)
	}
	if len(pathways) > 0 {
		if err := i.catalog.UpsertPathways(ctx, pathways); err != nil {
			return fmt.Errorf("write pathways: %w", err)
		}
	}
	if len(tagged) > 0 {
		if err := i.tags.PutMany(ctx, tagged); err != nil {
			return fmt.Errorf("write tagged courses: %w", err)
		}
	}
	return nil
}

func decodeFile[T any](path string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing corpus file")
		}
	}()

	out, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}
