// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"github.com/tomtom215/pathwise/internal/models"
)

// Priority is the tier attached to a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Preferences are the student's stated constraints.
type Preferences struct {
	// MaxDifficulty rejects courses whose average difficulty is above it.
	MaxDifficulty float64 `json:"max_difficulty"`

	// PreferredInstructors is searched in order; the first name present in a
	// course's instructor map becomes the recommended instructor.
	PreferredInstructors []string `json:"preferred_instructors"`

	// AvoidGenEds rejects general-education courses.
	AvoidGenEds bool `json:"avoid_gen_eds"`

	// PrioritizePathway visits core before recommended when true and
	// recommended before core when false.
	PrioritizePathway bool `json:"prioritize_pathway"`
}

// Request is a single recommendation call.
type Request struct {
	// RequestID is used for log correlation. Generated when empty.
	RequestID string

	PathwayID        string
	CompletedCourses []string
	Semester         models.Semester

	// CreditBudget is the target credit load. Zero selects Config.DefaultCredits.
	CreditBudget int

	Preferences Preferences
}

// Recommendation is one selected course.
type Recommendation struct {
	Course                *models.Course `json:"course"`
	Reason                string         `json:"reason"`
	Priority              Priority       `json:"priority"`
	RecommendedInstructor *string        `json:"recommended_instructor"`
}

// Response is the result of a recommendation call.
type Response struct {
	Recommendations        []Recommendation `json:"recommendations"`
	TotalCredits           int              `json:"total_credits"`
	AvgDifficulty          float64          `json:"avg_difficulty"`
	PrerequisitesSatisfied bool             `json:"prerequisites_satisfied"`
}

// bucketPlan describes how one bucket is scored.
type bucketPlan struct {
	bucket   models.Bucket
	priority Priority
	reason   string
}

var (
	prioritizedPlan = []bucketPlan{
		{models.BucketCore, PriorityHigh, "Core course for pathway"},
		{models.BucketRecommended, PriorityMedium, "Recommended for pathway"},
		{models.BucketOptional, PriorityLow, "Optional pathway course"},
	}
	balancedPlan = []bucketPlan{
		{models.BucketRecommended, PriorityHigh, "Recommended course"},
		{models.BucketCore, PriorityMedium, "Core course for pathway"},
		{models.BucketOptional, PriorityLow, "Optional pathway course"},
	}
)

// planFor returns the bucket visitation order for the prioritize flag.
func planFor(prioritizePathway bool) []bucketPlan {
	if prioritizePathway {
		return prioritizedPlan
	}
	return balancedPlan
}
