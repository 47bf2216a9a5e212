// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package validation

import (
	"strings"
	"testing"
)

type recommendInput struct {
	PathwayID        string   `json:"pathway_id" validate:"required"`
	Semester         string   `json:"semester" validate:"required,semester"`
	CreditBudget     int      `json:"credit_budget" validate:"gte=0,lte=30"`
	MaxDifficulty    float64  `json:"max_difficulty" validate:"gte=0,lte=5"`
	CompletedCourses []string `json:"completed_courses" validate:"max=200,dive,course_id"`
	Internal         string   `json:"-"`
}

func validInput() recommendInput {
	return recommendInput{
		PathwayID:        "data-engineer",
		Semester:         "Fall",
		CreditBudget:     15,
		MaxDifficulty:    4,
		CompletedCourses: []string{"CS 124", "STAT 107"},
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	in := validInput()
	if err := ValidateStruct(&in); err != nil {
		t.Errorf("ValidateStruct() error = %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*recommendInput)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing pathway",
			mutate:    func(in *recommendInput) { in.PathwayID = "" },
			wantField: "pathway_id",
			wantTag:   "required",
			wantMsg:   "pathway_id is required",
		},
		{
			name:      "unknown semester",
			mutate:    func(in *recommendInput) { in.Semester = "winter" },
			wantField: "semester",
			wantTag:   "semester",
			wantMsg:   "semester must be one of: spring, summer, fall",
		},
		{
			name:      "budget too large",
			mutate:    func(in *recommendInput) { in.CreditBudget = 31 },
			wantField: "credit_budget",
			wantTag:   "lte",
			wantMsg:   "credit_budget must be less than or equal to 30",
		},
		{
			name:      "negative difficulty",
			mutate:    func(in *recommendInput) { in.MaxDifficulty = -1 },
			wantField: "max_difficulty",
			wantTag:   "gte",
			wantMsg:   "max_difficulty must be greater than or equal to 0",
		},
		{
			name:      "malformed course id",
			mutate:    func(in *recommendInput) { in.CompletedCourses = []string{"CS 124", "cs124"} },
			wantField: "completed_courses[1]",
			wantTag:   "course_id",
			wantMsg:   `completed_courses[1] must be a course id like "CS 411"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validInput()
			tt.mutate(&in)
			verr := ValidateStruct(&in)
			if verr == nil {
				t.Fatal("ValidateStruct() expected error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Semester = "autumn"
	apiErr := ValidateStruct(&in).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "semester" {
		t.Errorf("Details[field] = %v, want semester", apiErr.Details["field"])
	}
	if apiErr.Details["value"] != "autumn" {
		t.Errorf("Details[value] = %v, want autumn", apiErr.Details["value"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.PathwayID = ""
	in.Semester = ""
	apiErr := ValidateStruct(&in).ToAPIError()

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	if !strings.Contains(apiErr.Message, "pathway_id is required") || !strings.Contains(apiErr.Message, "semester is required") {
		t.Errorf("Message = %q, want both field messages", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" {
		t.Errorf("Message = %q, want Validation failed", apiErr.Message)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty RequestValidationError should report validation failed")
	}
}

func TestValidCourseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{"CS 411", true},
		{"STAT 107", true},
		{"MATH 221", true},
		{"ECE 598A", true},
		{"CS411", false},
		{"cs 411", false},
		{"C 411", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidCourseID(tt.id); got != tt.want {
			t.Errorf("ValidCourseID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
