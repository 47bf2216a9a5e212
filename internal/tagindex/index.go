// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package tagindex stores the skills inferred for each course in BadgerDB.
//
// Layout:
//
//	tag:course:<course_id>           -> JSON TaggedCourse
//	tag:skill:<skill>\x00<course_id> -> course_id
//
// Skill keys are lower-cased so skill lookups are case-insensitive. The NUL
// separator cannot occur in a normalised skill, so a skill such as
// "c:embedded" never shares a prefix with "c". The primary record keeps the
// skills exactly as imported.
package tagindex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/models"
)

const (
	courseKeyPrefix = "tag:course:"
	skillKeyPrefix  = "tag:skill:"
	skillSeparator  = "\x00"

	gcDiscardRatio = 0.5
)

var (
	// ErrNotFound is returned when a course has no tag record.
	ErrNotFound = errors.New("tagged course not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("tag index is closed")
)

// Index is the Badger-backed course skill index. It is safe for concurrent use.
type Index struct {
	db       *badger.DB
	inMemory bool

	mu     sync.RWMutex
	closed bool
}

// Open opens or creates the index described by cfg.
func Open(cfg *config.TagIndexConfig) (*Index, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create tag index directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
		opts.ValueLogFileSize = 16 << 20
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open tag index: %w", err)
	}
	return &Index{db: db, inMemory: cfg.InMemory}, nil
}

// Close releases the underlying database. It is safe to call twice.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.db.Close()
}

func (ix *Index) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ix.closed {
		return ErrClosed
	}
	return nil
}

func courseKey(id string) []byte {
	return []byte(courseKeyPrefix + id)
}

func skillPrefix(skill string) []byte {
	return []byte(skillKeyPrefix + normalizeSkill(skill) + skillSeparator)
}

func skillKey(skill, id string) []byte {
	return append(skillPrefix(skill), id...)
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, skillSeparator, "")))
}

// Put stores tc, replacing any previous record and its skill entries.
func (ix *Index) Put(ctx context.Context, tc *models.TaggedCourse) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if err := ix.check(ctx); err != nil {
		return err
	}
	if tc.CourseID == "" {
		return errors.New("tagged course without course_id")
	}

	data, err := json.Marshal(tc)
	if err != nil {
		return fmt.Errorf("marshal tagged course: %w", err)
	}

	return ix.db.Update(func(txn *badger.Txn) error {
		old, err := getTagged(txn, tc.CourseID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if old != nil {
			for _, s := range old.Skills {
				if err := txn.Delete(skillKey(s, tc.CourseID)); err != nil {
					return fmt.Errorf("delete skill entry: %w", err)
				}
			}
		}

		if err := txn.Set(courseKey(tc.CourseID), data); err != nil {
			return fmt.Errorf("set tagged course: %w", err)
		}
		for _, s := range tc.Skills {
			if normalizeSkill(s) == "" {
				continue
			}
			if err := txn.Set(skillKey(s, tc.CourseID), []byte(tc.CourseID)); err != nil {
				return fmt.Errorf("set skill entry: %w", err)
			}
		}
		return nil
	})
}

// PutMany stores every tagged course and refreshes the entry gauge.
func (ix *Index) PutMany(ctx context.Context, tagged []models.TaggedCourse) error {
	for i := range tagged {
		if err := ix.Put(ctx, &tagged[i]); err != nil {
			return fmt.Errorf("put %s: %w", tagged[i].CourseID, err)
		}
	}
	n, err := ix.Count(ctx)
	if err != nil {
		return err
	}
	metrics.TagIndexEntries.Set(float64(n))
	return nil
}

// Get returns the tag record for a course or ErrNotFound.
func (ix *Index) Get(ctx context.Context, courseID string) (*models.TaggedCourse, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if err := ix.check(ctx); err != nil {
		return nil, err
	}

	var tc *models.TaggedCourse
	err := ix.db.View(func(txn *badger.Txn) error {
		var err error
		tc, err = getTagged(txn, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func getTagged(txn *badger.Txn, courseID string) (*models.TaggedCourse, error) {
	item, err := txn.Get(courseKey(courseID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("get tagged course: %w", err)
	}

	var tc models.TaggedCourse
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &tc)
	}); err != nil {
		return nil, fmt.Errorf("decode tagged course %s: %w", courseID, err)
	}
	return &tc, nil
}

// CoursesWithSkills returns the sorted IDs of courses tagged with any of skills.
func (ix *Index) CoursesWithSkills(ctx context.Context, skills []string) ([]string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if err := ix.check(ctx); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	err := ix.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for _, s := range skills {
			if normalizeSkill(s) == "" {
				continue
			}
			prefix := skillPrefix(s)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				if err := it.Item().Value(func(val []byte) error {
					seen[string(val)] = struct{}{}
					return nil
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan skill entries: %w", err)
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	// CourseID matches one course exactly.
	CourseID string

	// Skills matches courses tagged with any of the listed skills.
	Skills []string
}

// List returns one page of tag records in course ID order and the total
// number of matches.
func (ix *Index) List(ctx context.Context, f Filter, page, limit int) ([]models.TaggedCourse, int, error) {
	if f.CourseID != "" {
		tc, err := ix.Get(ctx, f.CourseID)
		if errors.Is(err, ErrNotFound) {
			return []models.TaggedCourse{}, 0, nil
		}
		if err != nil {
			return nil, 0, err
		}
		if len(f.Skills) > 0 && !matchesAny(tc, f.Skills) {
			return []models.TaggedCourse{}, 0, nil
		}
		if page > 1 {
			return []models.TaggedCourse{}, 1, nil
		}
		return []models.TaggedCourse{*tc}, 1, nil
	}

	if len(f.Skills) > 0 {
		ids, err := ix.CoursesWithSkills(ctx, f.Skills)
		if err != nil {
			return nil, 0, err
		}
		start, end := pageBounds(len(ids), page, limit)
		out := make([]models.TaggedCourse, 0, end-start)
		for _, id := range ids[start:end] {
			tc, err := ix.Get(ctx, id)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, *tc)
		}
		return out, len(ids), nil
	}

	return ix.scanPage(ctx, page, limit)
}

func matchesAny(tc *models.TaggedCourse, skills []string) bool {
	for _, want := range skills {
		w := normalizeSkill(want)
		for _, have := range tc.Skills {
			if normalizeSkill(have) == w {
				return true
			}
		}
	}
	return false
}

func pageBounds(total, page, limit int) (start, end int) {
	start = models.Offset(page, limit)
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end
}

// scanPage walks the primary records once, decoding only the requested page.
func (ix *Index) scanPage(ctx context.Context, page, limit int) ([]models.TaggedCourse, int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if err := ix.check(ctx); err != nil {
		return nil, 0, err
	}

	skip := models.Offset(page, limit)
	out := make([]models.TaggedCourse, 0, limit)
	total := 0

	err := ix.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(courseKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			total++
			if total <= skip || len(out) >= limit {
				continue
			}
			var tc models.TaggedCourse
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tc)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, tc)
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan tagged courses: %w", err)
	}
	return out, total, nil
}

// Count returns the number of tagged courses.
func (ix *Index) Count(ctx context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if err := ix.check(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := ix.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(courseKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count tagged courses: %w", err)
	}
	return count, nil
}

// RunGC reclaims value log space until Badger reports nothing to rewrite.
// In-memory indexes have no value log and return nil.
func (ix *Index) RunGC() error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.closed {
		return ErrClosed
	}
	if ix.inMemory {
		metrics.RecordTagIndexGC("skipped")
		return nil
	}

	rewrites := 0
	for {
		err := ix.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.RecordTagIndexGC("error")
			return fmt.Errorf("run value log GC: %w", err)
		}
		rewrites++
	}

	metrics.RecordTagIndexGC("ok")
	logging.Debug().Int("rewrites", rewrites).Msg("tag index GC complete")
	return nil
}
