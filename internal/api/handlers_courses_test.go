// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomtom215/pathwise/internal/models"
)

func TestListCourses(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name      string
		query     string
		want      []string
		wantTotal int
	}{
		{name: "all", query: "", want: []string{"CS 124", "CS 225", "CS 411", "RHET 105", "STAT 107"}, wantTotal: 5},
		{name: "department lower-case", query: "?department=cs", want: []string{"CS 124", "CS 225", "CS 411"}, wantTotal: 3},
		{name: "semester", query: "?semester=Summer", want: []string{"STAT 107"}, wantTotal: 1},
		{name: "gen ed", query: "?gen_ed=true", want: []string{"RHET 105", "STAT 107"}, wantTotal: 2},
		{name: "credit hours", query: "?credit_hours=3", want: []string{"CS 124", "CS 411"}, wantTotal: 2},
		{name: "min rating", query: "?min_rating=4", want: []string{"CS 124", "STAT 107"}, wantTotal: 2},
		{name: "max difficulty", query: "?max_difficulty=2.5", want: []string{"CS 124", "STAT 107"}, wantTotal: 2},
		{name: "sorted page", query: "?sort_by=course_avg_rating&order=desc&limit=2", want: []string{"STAT 107", "CS 124"}, wantTotal: 5},
		{name: "second page", query: "?page=2&limit=2", want: []string{"CS 411", "RHET 105"}, wantTotal: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(t, http.MethodGet, "/api/v1/courses"+tt.query, nil)
			if status != http.StatusOK || !res.Success {
				t.Fatalf("status = %d success = %v, want 200 true (error %+v)", status, res.Success, res.Error)
			}
			var courses []models.Course
			decodeData(t, res, &courses)
			if diff := cmp.Diff(tt.want, ids(courses)); diff != "" {
				t.Errorf("course ids mismatch (-want +got):\n%s", diff)
			}
			if res.Meta == nil || res.Meta.Pagination == nil {
				t.Fatal("meta.pagination missing")
			}
			if res.Meta.Pagination.TotalItems != tt.wantTotal {
				t.Errorf("total_items = %d, want %d", res.Meta.Pagination.TotalItems, tt.wantTotal)
			}
		})
	}
}

func TestListCourses_PaginationMeta(t *testing.T) {
	env := newTestEnv(t, nil)

	_, res := env.do(t, http.MethodGet, "/api/v1/courses?page=2&limit=2", nil)
	want := models.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 5, ItemsPerPage: 2, HasNext: true, HasPrev: true}
	if diff := cmp.Diff(&want, res.Meta.Pagination); diff != "" {
		t.Errorf("pagination mismatch (-want +got):\n%s", diff)
	}
	if res.Meta.RequestID == "" {
		t.Error("meta.request_id is empty")
	}
}

func TestListCourses_InvalidParams(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, query := range []string{
		"?limit=101",
		"?limit=0",
		"?page=0",
		"?credit_hours=abc",
		"?credit_hours=7",
		"?min_rating=6",
		"?gen_ed=maybe",
		"?semester=winter",
		"?sort_by=popularity",
		"?order=sideways",
	} {
		t.Run(query, func(t *testing.T) {
			status, res := env.do(t, http.MethodGet, "/api/v1/courses"+query, nil)
			expectError(t, status, res, http.StatusBadRequest, ErrCodeValidationFailed)
		})
	}
}

func TestSearchCourses(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "id without space", query: "?q=cs225", want: []string{"CS 225"}},
		{name: "id with space", query: "?q=CS%20124", want: []string{"CS 124"}},
		{name: "no match", query: "?q=zz999", want: []string{}},
		{name: "title substring", query: "?q=data", want: []string{"CS 225", "CS 411", "STAT 107"}},
		{name: "skills unioned", query: "?q=zz999&skills=sql,%20python", want: []string{"CS 411", "STAT 107"}},
		{name: "skills case-insensitive", query: "?q=writing&skills=ALGORITHMS", want: []string{"CS 225", "RHET 105"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(t, http.MethodGet, "/api/v1/courses/search"+tt.query, nil)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200 (error %+v)", status, res.Error)
			}
			var courses []models.Course
			decodeData(t, res, &courses)
			if diff := cmp.Diff(tt.want, ids(courses)); diff != "" {
				t.Errorf("search mismatch (-want +got):\n%s", diff)
			}
			if res.Meta.Pagination.TotalItems != len(tt.want) {
				t.Errorf("total_items = %d, want %d", res.Meta.Pagination.TotalItems, len(tt.want))
			}
		})
	}
}

func TestSearchCourses_RequiresQuery(t *testing.T) {
	env := newTestEnv(t, nil)

	status, res := env.do(t, http.MethodGet, "/api/v1/courses/search?skills=sql", nil)
	expectError(t, status, res, http.StatusBadRequest, ErrCodeBadRequest)
	if res.Error != nil && res.Error.Message != "Search query 'q' is required" {
		t.Errorf("message = %q", res.Error.Message)
	}
}

func TestGetCourse(t *testing.T) {
	env := newTestEnv(t, nil)

	status, res := env.do(t, http.MethodGet, "/api/v1/courses/CS%20225", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var course models.Course
	decodeData(t, res, &course)
	if course.CourseID != "CS 225" || course.CreditHours != 4 {
		t.Errorf("course = %s/%d, want CS 225/4", course.CourseID, course.CreditHours)
	}

	status, res = env.do(t, http.MethodGet, "/api/v1/courses/CS%20999", nil)
	expectError(t, status, res, http.StatusNotFound, ErrCodeNotFound)
	if res.Error != nil && res.Error.Message != "Course with ID 'CS 999' not found" {
		t.Errorf("message = %q", res.Error.Message)
	}
}

func TestGetPrerequisites(t *testing.T) {
	env := newTestEnv(t, nil)

	status, res := env.do(t, http.MethodGet, "/api/v1/courses/CS%20225/prerequisites", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var got PrerequisitesResponse
	decodeData(t, res, &got)
	if got.CourseID != "CS 225" || got.Prerequisites == nil {
		t.Fatalf("got %+v, want CS 225 with a prerequisite tree", got)
	}
	if diff := cmp.Diff([]string{"CS 124", "CS 173", "MATH 213"}, got.Prerequisites.CourseIDs()); diff != "" {
		t.Errorf("prerequisite ids mismatch (-want +got):\n%s", diff)
	}

	_, res = env.do(t, http.MethodGet, "/api/v1/courses/CS%20411/prerequisites", nil)
	var none PrerequisitesResponse
	decodeData(t, res, &none)
	if none.CourseID != "CS 411" || none.Prerequisites != nil {
		t.Errorf("CS 411 = %+v, want null prerequisites", none)
	}

	status, res = env.do(t, http.MethodGet, "/api/v1/courses/NOPE%20100/prerequisites", nil)
	expectError(t, status, res, http.StatusNotFound, ErrCodeNotFound)
}

func instructorNames(list []Instructor) []string {
	names := make([]string, 0, len(list))
	for _, i := range list {
		names = append(names, i.Name)
	}
	return names
}

func TestGetInstructors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		sortBy string
		want   []string
	}{
		{sortBy: "", want: []string{"Challen, G", "Smith, J", "Nguyen, T"}},
		{sortBy: "rating", want: []string{"Challen, G", "Smith, J", "Nguyen, T"}},
		{sortBy: "difficulty", want: []string{"Nguyen, T", "Challen, G", "Smith, J"}},
		{sortBy: "avg_gpa", want: []string{"Nguyen, T", "Smith, J", "Challen, G"}},
	}

	for _, tt := range tests {
		t.Run("sort_"+tt.sortBy, func(t *testing.T) {
			path := "/api/v1/courses/CS%20124/instructors"
			if tt.sortBy != "" {
				path += "?sort_by=" + tt.sortBy
			}
			status, res := env.do(t, http.MethodGet, path, nil)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200", status)
			}
			var got InstructorsResponse
			decodeData(t, res, &got)
			if diff := cmp.Diff(tt.want, instructorNames(got.Instructors)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	status, res := env.do(t, http.MethodGet, "/api/v1/courses/CS%20124/instructors?sort_by=name", nil)
	expectError(t, status, res, http.StatusBadRequest, ErrCodeValidationFailed)
}

func TestSortInstructors_NilAndTies(t *testing.T) {
	t.Parallel()

	in := map[string]models.InstructorStats{
		"Zed":   {},
		"Adams": {},
		"Moss":  {Rating: f64(-1)},
	}
	got := instructorNames(sortInstructors(in, "rating"))
	if diff := cmp.Diff([]string{"Adams", "Zed", "Moss"}, got); diff != "" {
		t.Errorf("sortInstructors() mismatch (-want +got):\n%s", diff)
	}

	if got := sortInstructors(nil, "rating"); got == nil || len(got) != 0 {
		t.Errorf("sortInstructors(nil) = %v, want empty non-nil slice", got)
	}
}
