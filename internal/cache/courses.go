// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/models"
)

// CourseFinder looks up a single course. A nil course with a nil error means
// the ID is unknown.
type CourseFinder interface {
	FindCourse(ctx context.Context, courseID string) (*models.Course, error)
}

// CourseCache memoises FindCourse results, including unknown IDs, since
// pathways routinely reference courses missing from the catalogue.
// Errors are never cached.
type CourseCache struct {
	next CourseFinder
	lru  *LRU[string, *models.Course]
}

// NewCourseCache wraps next with an LRU of the given size and TTL.
func NewCourseCache(next CourseFinder, size int, ttl time.Duration) *CourseCache {
	return &CourseCache{
		next: next,
		lru:  NewLRU[string, *models.Course](size, ttl),
	}
}

// FindCourse returns the cached course or loads it from the wrapped finder.
func (c *CourseCache) FindCourse(ctx context.Context, courseID string) (*models.Course, error) {
	if course, ok := c.lru.Get(courseID); ok {
		metrics.RecordCourseCache(true)
		return course, nil
	}
	metrics.RecordCourseCache(false)

	course, err := c.next.FindCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	c.lru.Add(courseID, course)
	metrics.CourseCacheEntries.Set(float64(c.lru.Len()))
	return course, nil
}

// Sweep drops expired entries and returns how many were removed. Expired
// entries are also skipped on read, so sweeping only bounds memory.
func (c *CourseCache) Sweep() int {
	removed := c.lru.CleanupExpired()
	metrics.CourseCacheEntries.Set(float64(c.lru.Len()))
	return removed
}

// Stats returns hit and miss counters and the current size.
func (c *CourseCache) Stats() (hits, misses int64, size int) {
	return c.lru.Stats()
}
