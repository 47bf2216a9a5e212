// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"github.com/tomtom215/pathwise/internal/models"
)

// skipReason explains why a candidate was not selected.
type skipReason int

const (
	accepted skipReason = iota
	skipMissing
	skipDuplicate
	skipDifficulty
	skipGenEd
	skipSemester
	skipCredits
)

func (r skipReason) String() string {
	switch r {
	case accepted:
		return "accepted"
	case skipMissing:
		return "missing"
	case skipDuplicate:
		return "duplicate"
	case skipDifficulty:
		return "difficulty"
	case skipGenEd:
		return "gen_ed"
	case skipSemester:
		return "semester"
	case skipCredits:
		return "credits"
	default:
		return "unknown"
	}
}

// selection accumulates the greedy course load for one request.
type selection struct {
	budget   int
	semester models.Semester
	prefs    Preferences

	recs          []Recommendation
	selected      map[string]struct{}
	totalCredits  int
	difficultySum float64
}

func newSelection(req *Request) *selection {
	return &selection{
		budget:   req.CreditBudget,
		semester: req.Semester,
		prefs:    req.Preferences,
		recs:     make([]Recommendation, 0),
		selected: make(map[string]struct{}),
	}
}

// consider evaluates one candidate and appends it when every constraint holds.
func (s *selection) consider(course *models.Course, plan bucketPlan) skipReason {
	if course == nil {
		return skipMissing
	}
	if _, dup := s.selected[course.CourseID]; dup {
		return skipDuplicate
	}

	difficulty := course.Difficulty()
	switch {
	case difficulty > s.prefs.MaxDifficulty:
		return skipDifficulty
	case s.prefs.AvoidGenEds && course.GenEd:
		return skipGenEd
	case !course.OfferedIn(s.semester):
		return skipSemester
	case s.totalCredits+course.CreditHours > s.budget:
		return skipCredits
	}

	s.recs = append(s.recs, Recommendation{
		Course:                course,
		Reason:                plan.reason,
		Priority:              plan.priority,
		RecommendedInstructor: s.preferredInstructor(course),
	})
	s.selected[course.CourseID] = struct{}{}
	s.totalCredits += course.CreditHours
	s.difficultySum += difficulty
	return accepted
}

// full reports whether the credit budget has been reached.
func (s *selection) full() bool {
	return s.totalCredits >= s.budget
}

// preferredInstructor returns the first preferred name teaching the course.
func (s *selection) preferredInstructor(course *models.Course) *string {
	for _, name := range s.prefs.PreferredInstructors {
		if course.HasInstructor(name) {
			match := name
			return &match
		}
	}
	return nil
}

func (s *selection) response() *Response {
	avg := 0.0
	if n := len(s.recs); n > 0 {
		avg = s.difficultySum / float64(n)
	}
	return &Response{
		Recommendations:        s.recs,
		TotalCredits:           s.totalCredits,
		AvgDifficulty:          avg,
		PrerequisitesSatisfied: true,
	}
}
