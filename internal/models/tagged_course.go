// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package models

// TaggedCourse maps a course to the skills inferred for it.
type TaggedCourse struct {
	CourseID string   `json:"course_id"`
	Title    string   `json:"title,omitempty"`
	Skills   []string `json:"skills"`
}

// HasAnySkill reports whether the course is tagged with any of skills.
func (t *TaggedCourse) HasAnySkill(skills []string) bool {
	for _, want := range skills {
		for _, have := range t.Skills {
			if have == want {
				return true
			}
		}
	}
	return false
}
