// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"testing"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/models"
)

// testDBSemaphore limits concurrently open DuckDB instances in tests.
var testDBSemaphore = make(chan struct{}, 2)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: MemoryPath, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func f64(v float64) *float64 { return &v }

func testCourses() []models.Course {
	return []models.Course{
		{
			CourseID: "CS 124", Title: "Introduction to Computer Science I", Department: "CS",
			Description: "Basic concepts in computing and fundamental techniques for solving problems.",
			CreditHours: 3, Semesters: []models.Semester{models.SemesterSpring, models.SemesterFall},
			AvgRating: f64(4.1), AvgDifficulty: f64(2.5), AvgGPA: f64(3.4),
			Instructors: map[string]models.InstructorStats{"Challen, G": {Rating: f64(4.5)}},
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

func testPathways() []models.Pathway {
	return []models.Pathway{
		{
			ID: "data-engineer", Name: "Data Engineer", SkillsRequired: []string{"sql", "python"},
			SkillWeights:       map[string]float64{"sql": 0.6, "python": 0.4},
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

func seedTestDB(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	if err := db.UpsertCourses(ctx, testCourses()); err != nil {
		t.Fatalf("UpsertCourses() error = %v", err)
	}
	if err := db.UpsertPathways(ctx, testPathways()); err != nil {
		t.Fatalf("UpsertPathways() error = %v", err)
	}
}

func TestNew_CreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	n, err := db.CountCourses(ctx)
	if err != nil {
		t.Fatalf("CountCourses() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountCourses() = %d, want 0 on a fresh database", n)
	}
}

func TestNew_FileBacked(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.DatabaseConfig{Path: dir + "/nested/catalogue.duckdb", Threads: 1}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := db.UpsertCourses(context.Background(), testCourses()[:1]); err != nil {
		t.Fatalf("UpsertCourses() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	c, err := reopened.FindCourse(context.Background(), "CS 124")
	if err != nil || c == nil {
		t.Fatalf("FindCourse() after reopen = %v, %v", c, err)
	}
}
