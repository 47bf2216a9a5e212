// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/tomtom215/pathwise/internal/corpus"
	"github.com/tomtom215/pathwise/internal/recommend"
)

const testCourses = `{
  "CS 124": {"course_id": "CS 124", "department": "CS", "title": "Introduction to Computer Science I",
             "description": "Basic concepts in computing.", "credit_hours": 3,
             "semesters": ["fall", "spring"], "course_avg_difficulty": 2.5},
  "CS 225": {"course_id": "CS 225", "department": "CS", "title": "Data Structures",
             "description": "Data abstractions.", "credit_hours": 4,
             "semesters": ["fall", "spring"], "course_avg_difficulty": 3.8,
             "instructors": {"Smith, J": {"rating": 4.0}}},
  "STAT 107": {"course_id": "STAT 107", "department": "STAT", "title": "Data Science Discovery",
               "description": "Introduction to data science.", "credit_hours": 4, "gen_ed": true,
               "semesters": ["fall"], "course_avg_difficulty": 1.9}
}`

const testPathways = `
pathways:
  - id: data-engineer
    name: Data Engineer
    required_skills: [sql]
    core_courses: [CS 225]
    recommended_courses: [STAT 107]
    optional_courses: [CS 124]
`

const testTags = `[{"course_id": "STAT 107", "skills": ["Python", "SQL"]}]`

// storeArgs points every command at stores inside a temp directory.
func storeArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{"--db", filepath.Join(dir, "catalogue.duckdb"), "--tags-dir", filepath.Join(dir, "tags")}
}

func writeTestCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"courses.json":        testCourses,
		"pathways.yaml":       testPathways,
		"tagged_courses.json": testTags,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("pathwise %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestImportSearchRecommend(t *testing.T) {
	stores := storeArgs(t)
	corpusDir := writeTestCorpus(t)

	var stats corpus.Stats
	out := mustExecute(t, append([]string{"import", "--corpus", corpusDir}, stores...)...)
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode import stats: %v\n%s", err, out)
	}
	if stats.Courses != 3 || stats.Pathways != 1 || stats.Tagged != 1 {
		t.Errorf("import stats = %+v, want 3 courses, 1 pathway, 1 tagged", stats)
	}

	t.Run("search by id", func(t *testing.T) {
		var got searchResult
		out := mustExecute(t, append([]string{"search", "cs225"}, stores...)...)
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode search: %v", err)
		}
		if len(got.Courses) != 1 || got.Courses[0].CourseID != "CS 225" {
			t.Errorf("search cs225 = %+v, want CS 225", got.Courses)
		}
	})

	t.Run("search unions skills", func(t *testing.T) {
		var got searchResult
		out := mustExecute(t, append([]string{"search", "zz999", "--skills", "sql"}, stores...)...)
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode search: %v", err)
		}
		if len(got.Courses) != 1 || got.Courses[0].CourseID != "STAT 107" || got.Pagination.TotalItems != 1 {
			t.Errorf("search zz999 --skills sql = %+v", got)
		}
	})

	t.Run("recommend", func(t *testing.T) {
		var got recommend.Response
		out := mustExecute(t, append([]string{
			"recommend", "data-engineer",
			"--semester", "Fall",
			"--completed", "CS 124",
			"--credits", "8",
			"--instructor", "Smith, J",
		}, stores...)...)
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode recommend: %v\n%s", err, out)
		}
		var picked []string
		for _, rec := range got.Recommendations {
			picked = append(picked, rec.Course.CourseID)
		}
		if diff := cmp.Diff([]string{"CS 225", "STAT 107"}, picked); diff != "" {
			t.Fatalf("recommendations mismatch (-want +got):\n%s", diff)
		}
		if got.TotalCredits != 8 {
			t.Errorf("total_credits = %d, want 8", got.TotalCredits)
		}
		if r := got.Recommendations[0].RecommendedInstructor; r == nil || *r != "Smith, J" {
			t.Errorf("recommended instructor = %v, want Smith, J", r)
		}
	})

	t.Run("recommend unknown pathway", func(t *testing.T) {
		_, err := execute(t, append([]string{"recommend", "astronaut", "--semester", "fall"}, stores...)...)
		if err == nil {
			t.Error("expected error for unknown pathway")
		}
	})
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	stores := storeArgs(t)
	corpusDir := writeTestCorpus(t)

	mustExecute(t, append([]string{"import", "--corpus", corpusDir, "--dry-run"}, stores...)...)

	var got searchResult
	out := mustExecute(t, append([]string{"search", "CS 225"}, stores...)...)
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(got.Courses) != 0 {
		t.Errorf("dry run wrote %d courses", len(got.Courses))
	}
}

func TestCommandValidation(t *testing.T) {
	stores := storeArgs(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "recommend missing semester", args: []string{"recommend", "data-engineer"}},
		{name: "recommend bad semester", args: []string{"recommend", "data-engineer", "--semester", "winter"}},
		{name: "recommend credits too high", args: []string{"recommend", "data-engineer", "--semester", "fall", "--credits", "31"}},
		{name: "recommend difficulty out of range", args: []string{"recommend", "data-engineer", "--semester", "fall", "--max-difficulty", "7"}},
		{name: "search without query", args: []string{"search"}},
		{name: "search bad limit", args: []string{"search", "cs", "--limit", "0"}},
		{name: "import missing dir", args: []string{"import", "--corpus", filepath.Join(t.TempDir(), "missing")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, append(tt.args, stores...)...); err == nil {
				t.Errorf("pathwise %v: expected error", tt.args)
			}
		})
	}
}

func TestRecommendFlags_Request(t *testing.T) {
	cmd := &cobra.Command{}
	flags := recommendFlags{semester: " SPRING ", completed: []string{" CS 124", ""}, recommendedFirst: true}
	cmd.Flags().Float64Var(&flags.maxDifficulty, "max-difficulty", 0, "")
	if err := cmd.Flags().Set("max-difficulty", "3.5"); err != nil {
		t.Fatal(err)
	}

	req, err := flags.request(cmd, " data-engineer ", recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}
	req.RequestID = ""

	want := recommend.Request{
		PathwayID:        "data-engineer",
		CompletedCourses: []string{"CS 124"},
		Semester:         "spring",
		Preferences:      recommend.Preferences{MaxDifficulty: 3.5, PrioritizePathway: false},
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Errorf("request() mismatch (-want +got):\n%s", diff)
	}
}
