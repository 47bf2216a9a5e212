// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/pathwise/internal/models"
	"golang.org/x/sync/errgroup"
)

// resolveCourses looks up ids and returns the courses and lookup errors in
// the same order. Missing courses are nil entries. Lookups run concurrently up
// to Config.LookupConcurrency and never cancel each other; the caller decides
// which error, if any, is reached.
func (e *Engine) resolveCourses(ctx context.Context, ids []string) ([]*models.Course, []error) {
	out := make([]*models.Course, len(ids))
	errs := make([]error, len(ids))

	lookup := func(i int, id string) {
		course, err := e.courses.FindCourse(ctx, id)
		if err != nil {
			errs[i] = fmt.Errorf("get course %q: %w", id, err)
			return
		}
		out[i] = course
	}

	if len(ids) <= 1 || e.config.LookupConcurrency <= 1 {
		for i, id := range ids {
			lookup(i, id)
			if errs[i] != nil {
				break
			}
		}
		return out, errs
	}

	var g errgroup.Group
	g.SetLimit(e.config.LookupConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			lookup(i, id)
			return nil
		})
	}
	_ = g.Wait()
	return out, errs
}

// availableCourses drops completed IDs, preserving declaration order.
func availableCourses(ids []string, completed map[string]struct{}) []string {
	available := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, done := completed[id]; !done {
			available = append(available, id)
		}
	}
	return available
}
