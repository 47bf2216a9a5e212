// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package models

// Bucket names one of a pathway's course lists.
type Bucket string

const (
	BucketCore        Bucket = "core"
	BucketRecommended Bucket = "recommended"
	BucketOptional    Bucket = "optional"

	// BucketAll selects every list. It is only meaningful for queries.
	BucketAll Bucket = "all"
)

// Buckets lists the concrete buckets in declaration order.
var Buckets = []Bucket{BucketCore, BucketRecommended, BucketOptional}

// ParseBucket reports whether s names a bucket or "all".
func ParseBucket(s string) (Bucket, bool) {
	switch b := Bucket(s); b {
	case BucketCore, BucketRecommended, BucketOptional, BucketAll:
		return b, true
	}
	return "", false
}

// Pathway is a career track. Its course lists are ordered and may reference
// course IDs that are absent from the catalogue.
type Pathway struct {
	ID                 string             `json:"id" yaml:"id"`
	Name               string             `json:"name" yaml:"name"`
	Description        string             `json:"description,omitempty" yaml:"description"`
	SkillsRequired     []string           `json:"skills_required" yaml:"skills_required"`
	SkillWeights       map[string]float64 `json:"skill_weights,omitempty" yaml:"skill_weights"`
	CoreCourses        []string           `json:"core_courses" yaml:"core_courses"`
	RecommendedCourses []string           `json:"recommended_courses" yaml:"recommended_courses"`
	OptionalCourses    []string           `json:"optional_courses" yaml:"optional_courses"`
}

// Courses returns the course IDs of bucket b. BucketAll and unknown buckets
// return nil.
func (p *Pathway) Courses(b Bucket) []string {
	switch b {
	case BucketCore:
		return p.CoreCourses
	case BucketRecommended:
		return p.RecommendedCourses
	case BucketOptional:
		return p.OptionalCourses
	}
	return nil
}
