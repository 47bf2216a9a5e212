// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/recommend"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

// ErrMissingQuery is returned for a search without a query.
var ErrMissingQuery = errors.New("search query 'q' is required")

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrCourseNotFound) ||
		errors.Is(err, database.ErrPathwayNotFound) ||
		errors.Is(err, recommend.ErrPathwayNotFound) ||
		errors.Is(err, tagindex.ErrNotFound)
}

// respondError maps a store or engine error to the envelope. notFoundMsg is
// used for the 404 case so clients see the id they asked for.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	rw := NewResponseWriter(w, r)
	switch {
	case isNotFound(err):
		rw.NotFound(notFoundMsg)
	case errors.Is(err, database.ErrUnavailable), errors.Is(err, tagindex.ErrClosed):
		rw.ServiceUnavailable("Course catalogue temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request timed out")
	default:
		rw.DatabaseError(err)
	}
}
