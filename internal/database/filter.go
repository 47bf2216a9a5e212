// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/pathwise/internal/models"
)

// CourseFilter narrows a course listing. Zero values mean "no constraint".
type CourseFilter struct {
	Department    string
	Semester      models.Semester
	GenEd         *bool
	CreditHours   *int
	MinRating     *float64
	MaxDifficulty *float64
}

var semesterColumns = map[models.Semester]string{
	models.SemesterSpring: "offered_spring",
	models.SemesterSummer: "offered_summer",
	models.SemesterFall:   "offered_fall",
}

// apply adds the filter predicates to b. Rating and difficulty bounds never
// match courses where the statistic is missing.
func (f *CourseFilter) apply(b sq.SelectBuilder) (sq.SelectBuilder, error) {
	if f.Department != "" {
		b = b.Where(sq.Eq{"department": f.Department})
	}
	if f.Semester != "" {
		col, ok := semesterColumns[f.Semester]
		if !ok {
			return b, fmt.Errorf("unknown semester %q", f.Semester)
		}
		b = b.Where(sq.Eq{col: true})
	}
	if f.GenEd != nil {
		b = b.Where(sq.Eq{"gen_ed": *f.GenEd})
	}
	if f.CreditHours != nil {
		b = b.Where(sq.Eq{"credit_hours": *f.CreditHours})
	}
	if f.MinRating != nil {
		b = b.Where(sq.GtOrEq{"course_avg_rating": *f.MinRating})
	}
	if f.MaxDifficulty != nil {
		b = b.Where(sq.LtOrEq{"course_avg_difficulty": *f.MaxDifficulty})
	}
	return b, nil
}

// SortField names a sortable course column.
type SortField string

const (
	SortCourseID    SortField = "course_id"
	SortTitle       SortField = "title"
	SortRating      SortField = "course_avg_rating"
	SortDifficulty  SortField = "course_avg_difficulty"
	SortGPA         SortField = "course_avg_gpa"
	SortCreditHours SortField = "credit_hours"
)

var sortableFields = map[SortField]bool{
	SortCourseID:    true,
	SortTitle:       true,
	SortRating:      true,
	SortDifficulty:  true,
	SortGPA:         true,
	SortCreditHours: true,
}

// ParseSortField validates a sort_by query value.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(s)
	return f, sortableFields[f]
}

// CourseSort orders a course listing. The zero value sorts by course_id
// ascending.
type CourseSort struct {
	Field SortField
	Desc  bool
}

func (s CourseSort) apply(b sq.SelectBuilder) sq.SelectBuilder {
	field := s.Field
	if !sortableFields[field] {
		field = SortCourseID
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	b = b.OrderBy(fmt.Sprintf("%s %s NULLS LAST", field, dir))
	if field != SortCourseID {
		b = b.OrderBy("course_id ASC")
	}
	return b
}
