// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

// Request structs for the API. Query parameters are parsed into these before
// validation so that a single validator pass reports every bad field.

// CourseListRequest holds the query parameters of GET /courses.
type CourseListRequest struct {
	Department    string   `json:"department" validate:"omitempty,max=16"`
	Semester      string   `json:"semester" validate:"omitempty,semester"`
	GenEd         *bool    `json:"gen_ed"`
	CreditHours   *int     `json:"credit_hours" validate:"omitempty,min=0,max=6"`
	MinRating     *float64 `json:"min_rating" validate:"omitempty,min=0,max=5"`
	MaxDifficulty *float64 `json:"max_difficulty" validate:"omitempty,min=0,max=5"`
	SortBy        string   `json:"sort_by" validate:"omitempty,oneof=course_id title course_avg_rating course_avg_difficulty course_avg_gpa credit_hours"`
	Order         string   `json:"order" validate:"omitempty,oneof=asc desc"`
	Page          int      `json:"page" validate:"min=1"`
	Limit         int      `json:"limit" validate:"min=1"`
}

// CourseSearchRequest holds the query parameters of GET /courses/search.
type CourseSearchRequest struct {
	Query  string   `json:"q" validate:"max=100"`
	Skills []string `json:"skills" validate:"max=20,dive,max=64"`
	Page   int      `json:"page" validate:"min=1"`
	Limit  int      `json:"limit" validate:"min=1"`
}

// InstructorsRequest holds the query parameters of GET /courses/{id}/instructors.
type InstructorsRequest struct {
	SortBy string `json:"sort_by" validate:"oneof=rating difficulty avg_gpa"`
}

// PathwayCoursesRequest holds the query parameters of GET /pathways/{id}/courses.
type PathwayCoursesRequest struct {
	Type           string `json:"type" validate:"oneof=core recommended optional all"`
	IncludeDetails bool   `json:"include_details"`
}

// TaggedListRequest holds the query parameters of GET /tagged-courses.
type TaggedListRequest struct {
	CourseID string   `json:"course_id" validate:"omitempty,max=32"`
	Skills   []string `json:"skills" validate:"max=20,dive,max=64"`
	Page     int      `json:"page" validate:"min=1"`
	Limit    int      `json:"limit" validate:"min=1"`
}

// RecommendRequest is the body of POST /pathways/{id}/recommend.
type RecommendRequest struct {
	CompletedCourses   []string            `json:"completed_courses" validate:"required,max=200,dive,max=32"`
	CurrentSemester    string              `json:"current_semester" validate:"required,semester"`
	CreditsPerSemester *int                `json:"credits_per_semester" validate:"omitempty,min=1,max=30"`
	Preferences        *PreferencesRequest `json:"preferences"`
}

// PreferencesRequest carries optional preference overrides. Absent fields
// take the engine defaults.
type PreferencesRequest struct {
	MaxDifficulty        *float64 `json:"max_difficulty" validate:"omitempty,min=0,max=5"`
	PreferredInstructors []string `json:"preferred_instructors" validate:"max=20"`
	AvoidGenEds          *bool    `json:"avoid_gen_eds"`
	PrioritizePathway    *bool    `json:"prioritize_pathway"`
}
