// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/pathwise/internal/models"
)

// CourseSearch is a free-text course query.
type CourseSearch struct {
	// Query is matched against course_id (see BuildSearchPattern) and as a
	// case-insensitive substring of title and description.
	Query string

	// AlsoIDs are unioned into the result regardless of Query. The API
	// fills it from the skill index.
	AlsoIDs []string
}

// BuildSearchPattern turns user input into a case-insensitive regular
// expression anchored at the start of a course ID. Whitespace in the input
// and every letter/digit boundary become optional whitespace, so "cs124",
// "CS124" and "cs 124" all match "CS 124".
func BuildSearchPattern(q string) string {
	var b strings.Builder
	b.WriteString("^")

	const gap = `\s*`
	var prev rune
	pendingGap := false
	for _, r := range strings.TrimSpace(q) {
		if unicode.IsSpace(r) {
			pendingGap = true
			continue
		}
		if prev != 0 && (pendingGap || isAlnumBoundary(prev, r)) {
			b.WriteString(gap)
		}
		pendingGap = false
		b.WriteString(regexp.QuoteMeta(string(r)))
		prev = r
	}
	return b.String()
}

func isAlnumBoundary(a, b rune) bool {
	return (unicode.IsLetter(a) && unicode.IsDigit(b)) || (unicode.IsDigit(a) && unicode.IsLetter(b))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(q)) + "%"
}

func (s *CourseSearch) predicate() sq.Sqlizer {
	like := containsPattern(s.Query)
	or := sq.Or{
		sq.Expr("regexp_matches(course_id, ?, 'i')", BuildSearchPattern(s.Query)),
		sq.Expr(`title ILIKE ? ESCAPE '\'`, like),
		sq.Expr(`description ILIKE ? ESCAPE '\'`, like),
	}
	if len(s.AlsoIDs) > 0 {
		or = append(or, sq.Eq{"course_id": s.AlsoIDs})
	}
	return or
}

// SearchCourses returns one page of courses matching search, ordered by
// course ID, plus the total number of matches.
func (db *DB) SearchCourses(ctx context.Context, search CourseSearch, page, limit int) ([]models.Course, int, error) {
	if strings.TrimSpace(search.Query) == "" {
		return nil, 0, fmt.Errorf("search query is empty")
	}
	pred := search.predicate()

	total, err := db.queryCount(ctx, tableCourses, psql.Select("COUNT(*)").From(tableCourses).Where(pred))
	if err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	rows, err := db.queryRows(ctx, "search", tableCourses,
		psql.Select(courseColumns...).From(tableCourses).Where(pred).
			OrderBy("course_id ASC").
			Limit(uint64(limit)).
			Offset(uint64(models.Offset(page, limit))))
	if err != nil {
		return nil, 0, fmt.Errorf("search courses: %w", err)
	}
	courses, err := scanCourses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan courses: %w", err)
	}
	return courses, total, nil
}
