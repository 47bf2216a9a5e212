// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/recommend"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

func f64(v float64) *float64 { return &v }

func fixtureCourses() []models.Course {
	return []models.Course{
		{
			CourseID: "CS 124", Title: "Introduction to Computer Science I", Department: "CS",
			Description: "Basic concepts in computing and fundamental techniques for solving problems.",
			CreditHours: 3, Semesters: []models.Semester{models.SemesterSpring, models.SemesterFall},
			AvgRating: f64(4.1), AvgDifficulty: f64(2.5), AvgGPA: f64(3.4),
			Instructors: map[string]models.InstructorStats{
				"Challen, G": {Rating: f64(4.5), Difficulty: f64(2.0), AvgGPA: f64(3.5)},
				"Smith, J":   {Rating: f64(3.9), Difficulty: f64(3.1), AvgGPA: f64(3.2)},
				"Nguyen, T":  {Difficulty: f64(1.5)},
			},
		},
		{
			CourseID: "CS 225", Title: "Data Structures", Department: "CS",
			Description: "Data abstractions: elementary data structures, trees and graphs.",
			CreditHours: 4, Semesters: []models.Semester{models.SemesterSpring, models.SemesterFall},
			AvgRating: f64(3.6), AvgDifficulty: f64(3.8), AvgGPA: f64(3.1),
			Prerequisites: &models.PrerequisiteNode{Type: models.PrereqAnd, Courses: []models.PrerequisiteNode{
				{Type: models.PrereqSingle, Course: "CS 124"},
				{Type: models.PrereqOr, Courses: []models.PrerequisiteNode{
					{Type: models.PrereqSingle, Course: "CS 173"},
					{Type: models.PrereqSingle, Course: "MATH 213"},
				}},
			}},
			Instructors: map[string]models.InstructorStats{"Smith, J": {Rating: f64(4.0)}},
		},
		{
			CourseID: "CS 411", Title: "Database Systems", Department: "CS",
			Description: "Examination of the logical organization of databases.",
			CreditHours: 3, Semesters: []models.Semester{models.SemesterFall},
			AvgRating: f64(3.2), AvgDifficulty: f64(3.0),
		},
		{
			CourseID: "STAT 107", Title: "Data Science Discovery", Department: "STAT",
			Description: "Introduction to data science.", GenEd: true,
			CreditHours: 4, Semesters: []models.Semester{models.SemesterSpring, models.SemesterSummer, models.SemesterFall},
			AvgRating: f64(4.4), AvgDifficulty: f64(1.9),
		},
		{
			CourseID: "RHET 105", Title: "Writing and Research", Department: "RHET",
			Description: "Principles of writing.", GenEd: true,
			CreditHours: 4, Semesters: []models.Semester{models.SemesterSpring},
		},
	}
}

func fixturePathways() []models.Pathway {
	return []models.Pathway{
		{
			ID: "data-engineer", Name: "Data Engineer", SkillsRequired: []string{"sql", "python"},
			CoreCourses:        []string{"CS 225", "CS 411"},
			RecommendedCourses: []string{"STAT 107", "NOPE 100"},
			OptionalCourses:    []string{"CS 124"},
		},
		{
			ID: "web-developer", Name: "Web Developer", SkillsRequired: []string{"javascript"},
			CoreCourses: []string{"CS 124"},
		},
	}
}

func fixtureTags() []models.TaggedCourse {
	return []models.TaggedCourse{
		{CourseID: "CS 225", Skills: []string{"C++", "Algorithms"}},
		{CourseID: "CS 411", Skills: []string{"SQL", "Data Modeling"}},
		{CourseID: "STAT 107", Skills: []string{"Python", "Statistics"}},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			DefaultPageSize:  20,
			MaxPageSize:      100,
			MaxTagPageSize:   1000,
			RecommendTimeout: 5 * time.Second,
		},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
}

type testEnv struct {
	handler *Handler
	server  http.Handler
}

// newTestEnv builds the full stack: an in-memory DuckDB catalogue, an
// in-memory skill index and a real engine behind the chi router.
func newTestEnv(t *testing.T, mwCfg *ChiMiddlewareConfig) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.New(&config.DatabaseConfig{Path: database.MemoryPath, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.UpsertCourses(ctx, fixtureCourses()); err != nil {
		t.Fatalf("UpsertCourses() error = %v", err)
	}
	if err := db.UpsertPathways(ctx, fixturePathways()); err != nil {
		t.Fatalf("UpsertPathways() error = %v", err)
	}

	tags, err := tagindex.Open(&config.TagIndexConfig{InMemory: true})
	if err != nil {
		t.Fatalf("tagindex.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = tags.Close() })
	if err := tags.PutMany(ctx, fixtureTags()); err != nil {
		t.Fatalf("PutMany() error = %v", err)
	}

	engineCfg := recommend.DefaultConfig()
	engine, err := recommend.NewEngine(engineCfg, db, db, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	return newTestEnvWith(t, Deps{
		Catalog:  db,
		Tags:     tags,
		Engine:   engine,
		Defaults: engineCfg.DefaultPreferences(),
		Version:  "test",
	}, mwCfg)
}

func newTestEnvWith(t *testing.T, deps Deps, mwCfg *ChiMiddlewareConfig) *testEnv {
	t.Helper()
	h, err := NewHandler(testConfig(), deps)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return &testEnv{handler: h, server: NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()}
}

// envelope mirrors APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *struct {
		RequestID  string             `json:"request_id"`
		Pagination *models.Pagination `json:"pagination"`
	} `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v\nbody: %s", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}

func ids(courses []models.Course) []string {
	out := make([]string, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].CourseID)
	}
	return out
}

func expectError(t *testing.T, status int, env envelope, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Errorf("status = %d, want %d", status, wantStatus)
	}
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Error == nil || env.Error.Code != wantCode {
		t.Errorf("error = %+v, want code %s", env.Error, wantCode)
	}
}
