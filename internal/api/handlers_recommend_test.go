// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"math"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/recommend"
)

type pick struct {
	ID         string
	Priority   recommend.Priority
	Reason     string
	Instructor string
}

func picks(resp *recommend.Response) []pick {
	out := make([]pick, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		p := pick{ID: rec.Course.CourseID, Priority: rec.Priority, Reason: rec.Reason}
		if rec.RecommendedInstructor != nil {
			p.Instructor = *rec.RecommendedInstructor
		}
		out = append(out, p)
	}
	return out
}

func TestRecommend(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name        string
		body        map[string]interface{}
		want        []pick
		wantCredits int
		wantAvg     float64
	}{
		{
			name: "prioritized defaults",
			body: map[string]interface{}{
				"completed_courses": []string{"CS 124"},
				"current_semester":  "Fall",
			},
			want: []pick{
				{ID: "CS 225", Priority: recommend.PriorityHigh, Reason: "Core course for pathway"},
				{ID: "CS 411", Priority: recommend.PriorityHigh, Reason: "Core course for pathway"},
				{ID: "STAT 107", Priority: recommend.PriorityMedium, Reason: "Recommended for pathway"},
			},
			wantCredits: 11,
			wantAvg:     (3.8 + 3.0 + 1.9) / 3,
		},
		{
			name: "avoid gen eds",
			body: map[string]interface{}{
				"completed_courses":    []string{"CS 124"},
				"current_semester":     "fall",
				"credits_per_semester": 15,
				"preferences":          map[string]interface{}{"avoid_gen_eds": true},
			},
			want: []pick{
				{ID: "CS 225", Priority: recommend.PriorityHigh, Reason: "Core course for pathway"},
				{ID: "CS 411", Priority: recommend.PriorityHigh, Reason: "Core course for pathway"},
			},
			wantCredits: 7,
			wantAvg:     (3.8 + 3.0) / 2,
		},
		{
			name: "recommended first stops at budget",
			body: map[string]interface{}{
				"completed_courses":    []string{},
				"current_semester":     "fall",
				"credits_per_semester": 8,
				"preferences":          map[string]interface{}{"prioritize_pathway": false},
			},
			want: []pick{
				{ID: "STAT 107", Priority: recommend.PriorityHigh, Reason: "Recommended course"},
				{ID: "CS 225", Priority: recommend.PriorityMedium, Reason: "Core course for pathway"},
			},
			wantCredits: 8,
			wantAvg:     (1.9 + 3.8) / 2,
		},
		{
			name: "difficulty ceiling and instructor",
			body: map[string]interface{}{
				"completed_courses": []string{},
				"current_semester":  "spring",
				"preferences": map[string]interface{}{
					"max_difficulty":        3.0,
					"preferred_instructors": []string{"Ghost, B", "Smith, J"},
				},
			},
			want: []pick{
				{ID: "STAT 107", Priority: recommend.PriorityMedium, Reason: "Recommended for pathway"},
				{ID: "CS 124", Priority: recommend.PriorityLow, Reason: "Optional pathway course", Instructor: "Smith, J"},
			},
			wantCredits: 7,
			wantAvg:     (1.9 + 2.5) / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := env.do(t, http.MethodPost, "/api/v1/pathways/data-engineer/recommend", tt.body)
			if status != http.StatusOK {
				t.Fatalf("status = %d, want 200 (error %+v)", status, res.Error)
			}
			var got recommend.Response
			decodeData(t, res, &got)

			if diff := cmp.Diff(tt.want, picks(&got)); diff != "" {
				t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
			}
			if got.TotalCredits != tt.wantCredits {
				t.Errorf("total_credits = %d, want %d", got.TotalCredits, tt.wantCredits)
			}
			if math.Abs(got.AvgDifficulty-tt.wantAvg) > 1e-9 {
				t.Errorf("avg_difficulty = %v, want %v", got.AvgDifficulty, tt.wantAvg)
			}
			if !got.PrerequisitesSatisfied {
				t.Error("prerequisites_satisfied = false, want true")
			}
		})
	}
}

func TestRecommend_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	valid := map[string]interface{}{"completed_courses": []string{}, "current_semester": "fall"}

	tests := []struct {
		name       string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{name: "unknown pathway", path: "/api/v1/pathways/astronaut/recommend", body: valid, wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{name: "missing body", body: "", wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "malformed json", body: "{not json", wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest},
		{name: "missing completed", body: map[string]interface{}{"current_semester": "fall"}, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed},
		{name: "bad semester", body: map[string]interface{}{"completed_courses": []string{}, "current_semester": "winter"}, wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed},
		{
			name:       "zero credits",
			body:       map[string]interface{}{"completed_courses": []string{}, "current_semester": "fall", "credits_per_semester": 0},
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed,
		},
		{
			name: "difficulty out of range",
			body: map[string]interface{}{
				"completed_courses": []string{}, "current_semester": "fall",
				"preferences": map[string]interface{}{"max_difficulty": 9},
			},
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = "/api/v1/pathways/data-engineer/recommend"
			}
			status, res := env.do(t, http.MethodPost, path, tt.body)
			expectError(t, status, res, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestRecommend_RecordsOutcomeMetrics(t *testing.T) {
	env := newTestEnv(t, nil)
	valid := map[string]interface{}{"completed_courses": []string{}, "current_semester": "fall"}

	notFound := metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeNotFound)
	ok := metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeOK)
	beforeNotFound, beforeOK := testutil.ToFloat64(notFound), testutil.ToFloat64(ok)

	if status, _ := env.do(t, http.MethodPost, "/api/v1/pathways/astronaut/recommend", valid); status != http.StatusNotFound {
		t.Fatalf("unknown pathway status = %d, want 404", status)
	}
	if status, _ := env.do(t, http.MethodPost, "/api/v1/pathways/data-engineer/recommend", valid); status != http.StatusOK {
		t.Fatalf("recommend status = %d, want 200", status)
	}

	if got := testutil.ToFloat64(notFound) - beforeNotFound; got < 1 {
		t.Errorf("not_found outcomes recorded = %v, want at least 1", got)
	}
	if got := testutil.ToFloat64(ok) - beforeOK; got < 1 {
		t.Errorf("ok outcomes recorded = %v, want at least 1", got)
	}
}

func TestEngineRequest_Defaults(t *testing.T) {
	t.Parallel()

	h := &Handler{defaults: recommend.Preferences{MaxDifficulty: 5, PrioritizePathway: true}}
	credits := 12
	noPriority := false
	body := &RecommendRequest{
		CompletedCourses:   []string{" CS 124 ", ""},
		CurrentSemester:    "FALL",
		CreditsPerSemester: &credits,
		Preferences:        &PreferencesRequest{PrioritizePathway: &noPriority},
	}

	req := h.engineRequest(newRequestWithParam("pathway_id", "data-engineer"), body)

	want := recommend.Request{
		PathwayID:        "data-engineer",
		CompletedCourses: []string{"CS 124"},
		Semester:         "fall",
		CreditBudget:     12,
		Preferences:      recommend.Preferences{MaxDifficulty: 5, PrioritizePathway: false},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("engineRequest() mismatch (-want +got):\n%s", diff)
	}
}
