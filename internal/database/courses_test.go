// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tomtom215/pathwise/internal/models"
)

func courseIDs(courses []models.Course) []string {
	ids := make([]string, len(courses))
	for i := range courses {
		ids[i] = courses[i].CourseID
	}
	return ids
}

func TestFindCourse_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	for _, want := range testCourses() {
		got, err := db.FindCourse(ctx, want.CourseID)
		if err != nil {
			t.Fatalf("FindCourse(%s) error = %v", want.CourseID, err)
		}
		if diff := cmp.Diff(&want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("FindCourse(%s) mismatch (-want +got):\n%s", want.CourseID, diff)
		}
	}
}

func TestFindCourse_Unknown(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	got, err := db.FindCourse(ctx, "NOPE 100")
	if err != nil || got != nil {
		t.Errorf("FindCourse(unknown) = %v, %v; want nil, nil", got, err)
	}

	_, err = db.GetCourse(ctx, "NOPE 100")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("GetCourse(unknown) error = %v, want ErrCourseNotFound", err)
	}
}

func TestListCourses_Filters(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)

	yes := true
	four := 4

	tests := []struct {
		name   string
		filter CourseFilter
		want   []string
	}{
		{name: "no filter", filter: CourseFilter{}, want: []string{"CS 124", "CS 225", "CS 411", "RHET 105", "STAT 107"}},
		{name: "department", filter: CourseFilter{Department: "CS"}, want: []string{"CS 124", "CS 225", "CS 411"}},
		{name: "semester", filter: CourseFilter{Semester: models.SemesterSummer}, want: []string{"STAT 107"}},
		{name: "gen ed", filter: CourseFilter{GenEd: &yes}, want: []string{"RHET 105", "STAT 107"}},
		{name: "credit hours", filter: CourseFilter{CreditHours: &four}, want: []string{"CS 225", "RHET 105", "STAT 107"}},
		{name: "min rating skips missing", filter: CourseFilter{MinRating: f64(4.0)}, want: []string{"CS 124", "STAT 107"}},
		{name: "max difficulty", filter: CourseFilter{MaxDifficulty: f64(3.0)}, want: []string{"CS 124", "CS 411", "STAT 107"}},
		{
			name:   "combined",
			filter: CourseFilter{Department: "CS", Semester: models.SemesterFall, MaxDifficulty: f64(3.0)},
			want:   []string{"CS 124", "CS 411"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := db.ListCourses(context.Background(), tt.filter, CourseSort{}, 1, 20)
			if err != nil {
				t.Fatalf("ListCourses() error = %v", err)
			}
			if total != len(tt.want) {
				t.Errorf("total = %d, want %d", total, len(tt.want))
			}
			if diff := cmp.Diff(tt.want, courseIDs(got)); diff != "" {
				t.Errorf("ListCourses() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListCourses_UnknownSemester(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := db.ListCourses(context.Background(), CourseFilter{Semester: "winter"}, CourseSort{}, 1, 20)
	if err == nil {
		t.Error("ListCourses() expected error for unknown semester")
	}
}

func TestListCourses_SortAndPaginate(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	got, _, err := db.ListCourses(ctx, CourseFilter{}, CourseSort{Field: SortRating, Desc: true}, 1, 10)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	want := []string{"STAT 107", "CS 124", "CS 225", "CS 411", "RHET 105"}
	if diff := cmp.Diff(want, courseIDs(got)); diff != "" {
		t.Errorf("rating desc mismatch (-want +got):\n%s", diff)
	}

	page3, total, err := db.ListCourses(ctx, CourseFilter{}, CourseSort{}, 3, 2)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if diff := cmp.Diff([]string{"STAT 107"}, courseIDs(page3)); diff != "" {
		t.Errorf("page 3 mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	if f, ok := ParseSortField("course_avg_gpa"); !ok || f != SortGPA {
		t.Errorf("ParseSortField(course_avg_gpa) = %q, %v", f, ok)
	}
	if _, ok := ParseSortField("course_id; DROP TABLE courses"); ok {
		t.Error("ParseSortField accepted an arbitrary column")
	}
}

func TestCoursesByIDs_PreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)

	got, err := db.CoursesByIDs(context.Background(), []string{"STAT 107", "NOPE 1", "CS 124", "STAT 107"})
	if err != nil {
		t.Fatalf("CoursesByIDs() error = %v", err)
	}
	if diff := cmp.Diff([]string{"STAT 107", "CS 124"}, courseIDs(got)); diff != "" {
		t.Errorf("CoursesByIDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsertCourses_Replaces(t *testing.T) {
	db := setupTestDB(t)
	seedTestDB(t, db)
	ctx := context.Background()

	updated := testCourses()[2]
	updated.Title = "Database Systems (revised)"
	updated.AvgDifficulty = nil
	if err := db.UpsertCourses(ctx, []models.Course{updated}); err != nil {
		t.Fatalf("UpsertCourses() error = %v", err)
	}

	got, err := db.GetCourse(ctx, "CS 411")
	if err != nil {
		t.Fatalf("GetCourse() error = %v", err)
	}
	if got.Title != "Database Systems (revised)" || got.AvgDifficulty != nil {
		t.Errorf("GetCourse() = %+v, want revised title and nil difficulty", got)
	}
	if n, _ := db.CountCourses(ctx); n != 5 {
		t.Errorf("CountCourses() = %d, want 5", n)
	}
}
