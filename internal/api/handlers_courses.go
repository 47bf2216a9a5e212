// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"cmp"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/models"
)

// pathParam returns an unescaped chi URL parameter. Course ids contain a
// space, so clients send them percent-encoded.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(raw)
}

func courseNotFound(id string) string {
	return fmt.Sprintf("Course with ID '%s' not found", id)
}

// ListCourses handles GET /courses.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := CourseListRequest{
		Department:    p.str("department"),
		Semester:      p.str("semester"),
		GenEd:         p.boolPtr("gen_ed"),
		CreditHours:   p.intPtr("credit_hours"),
		MinRating:     p.floatPtr("min_rating"),
		MaxDifficulty: p.floatPtr("max_difficulty"),
		SortBy:        p.strDefault("sort_by", string(database.SortCourseID)),
		Order:         strings.ToLower(p.strDefault("order", "asc")),
		Page:          p.intDefault("page", 1),
		Limit:         p.intDefault("limit", h.config.API.DefaultPageSize),
	}
	if p.respondParamError(w, r) || validateRequest(w, r, &req) ||
		checkLimit(w, r, req.Limit, h.config.API.MaxPageSize) {
		return
	}

	filter := database.CourseFilter{
		Department:    strings.ToUpper(req.Department),
		GenEd:         req.GenEd,
		CreditHours:   req.CreditHours,
		MinRating:     req.MinRating,
		MaxDifficulty: req.MaxDifficulty,
	}
	if req.Semester != "" {
		filter.Semester, _ = models.ParseSemester(req.Semester)
	}
	field, _ := database.ParseSortField(req.SortBy)
	order := database.CourseSort{Field: field, Desc: req.Order == "desc"}

	courses, total, err := h.catalog.ListCourses(r.Context(), filter, order, req.Page, req.Limit)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	NewResponseWriter(w, r).SuccessWithPagination(courses, models.NewPagination(req.Page, req.Limit, total))
}

// SearchCourses handles GET /courses/search. The query matches course ids
// with optional whitespace at letter/digit boundaries and titles or
// descriptions by substring. Courses tagged with any of the skills are
// added to the result.
func (h *Handler) SearchCourses(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := CourseSearchRequest{
		Query:  p.str("q"),
		Skills: p.list("skills"),
		Page:   p.intDefault("page", 1),
		Limit:  p.intDefault("limit", h.config.API.DefaultPageSize),
	}
	if req.Query == "" {
		NewResponseWriter(w, r).BadRequest("Search query 'q' is required")
		return
	}
	if p.respondParamError(w, r) || validateRequest(w, r, &req) ||
		checkLimit(w, r, req.Limit, h.config.API.MaxPageSize) {
		return
	}

	search := database.CourseSearch{Query: req.Query}
	if len(req.Skills) > 0 && h.tags != nil {
		ids, err := h.tags.CoursesWithSkills(r.Context(), req.Skills)
		if err != nil {
			respondError(w, r, err, "")
			return
		}
		search.AlsoIDs = ids
	}

	courses, total, err := h.catalog.SearchCourses(r.Context(), search, req.Page, req.Limit)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", sanitizeLogValue(req.Query)).
		Int("skills", len(req.Skills)).
		Int("total", total).
		Msg("course search")

	NewResponseWriter(w, r).SuccessWithPagination(courses, models.NewPagination(req.Page, req.Limit, total))
}

// GetCourse handles GET /courses/{course_id}.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "course_id")
	course, err := h.catalog.GetCourse(r.Context(), id)
	if err != nil {
		respondError(w, r, err, courseNotFound(id))
		return
	}
	NewResponseWriter(w, r).Success(course)
}

// PrerequisitesResponse is the payload of the prerequisites endpoint.
type PrerequisitesResponse struct {
	CourseID      string                   `json:"course_id"`
	Prerequisites *models.PrerequisiteNode `json:"prerequisites"`
}

// GetPrerequisites handles GET /courses/{course_id}/prerequisites.
func (h *Handler) GetPrerequisites(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "course_id")
	course, err := h.catalog.GetCourse(r.Context(), id)
	if err != nil {
		respondError(w, r, err, courseNotFound(id))
		return
	}
	NewResponseWriter(w, r).Success(PrerequisitesResponse{
		CourseID:      course.CourseID,
		Prerequisites: course.Prerequisites,
	})
}

// Instructor is one entry of a course's instructor list.
type Instructor struct {
	Name       string   `json:"name"`
	Rating     *float64 `json:"rating"`
	Difficulty *float64 `json:"difficulty"`
	AvgGPA     *float64 `json:"avg_gpa"`
}

// InstructorsResponse is the payload of the instructors endpoint.
type InstructorsResponse struct {
	CourseID    string       `json:"course_id"`
	Instructors []Instructor `json:"instructors"`
}

// GetInstructors handles GET /courses/{course_id}/instructors.
func (h *Handler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := InstructorsRequest{SortBy: p.strDefault("sort_by", "rating")}
	if validateRequest(w, r, &req) {
		return
	}

	id := pathParam(r, "course_id")
	course, err := h.catalog.GetCourse(r.Context(), id)
	if err != nil {
		respondError(w, r, err, courseNotFound(id))
		return
	}
	NewResponseWriter(w, r).Success(InstructorsResponse{
		CourseID:    course.CourseID,
		Instructors: sortInstructors(course.Instructors, req.SortBy),
	})
}

// sortInstructors lists instructors ordered by the chosen statistic. Rating
// sorts best first; difficulty and avg_gpa sort ascending. A missing value
// counts as zero and ties are broken by name.
func sortInstructors(in map[string]models.InstructorStats, sortBy string) []Instructor {
	list := make([]Instructor, 0, len(in))
	for name, s := range in {
		list = append(list, Instructor{Name: name, Rating: s.Rating, Difficulty: s.Difficulty, AvgGPA: s.AvgGPA})
	}

	key := func(i Instructor) float64 {
		var v *float64
		switch sortBy {
		case "difficulty":
			v = i.Difficulty
		case "avg_gpa":
			v = i.AvgGPA
		default:
			v = i.Rating
		}
		if v == nil {
			return 0
		}
		return *v
	}
	desc := sortBy == "rating"

	slices.SortFunc(list, func(a, b Instructor) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return list
}
