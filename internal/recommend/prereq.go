// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"github.com/tomtom215/pathwise/internal/models"
)

// EvaluatePrerequisites reports whether completed satisfies node.
//
// A nil tree and RAW text are treated as satisfied since neither names a
// course that could be checked. AND and OR nodes with no children are also
// satisfied.
func EvaluatePrerequisites(node *models.PrerequisiteNode, completed map[string]struct{}) bool {
	if node == nil {
		return true
	}

	switch node.Type {
	case models.PrereqSingle:
		_, ok := completed[node.Course]
		return ok
	case models.PrereqAnd:
		for i := range node.Courses {
			if !EvaluatePrerequisites(&node.Courses[i], completed) {
				return false
			}
		}
		return true
	case models.PrereqOr:
		if len(node.Courses) == 0 {
			return true
		}
		for i := range node.Courses {
			if EvaluatePrerequisites(&node.Courses[i], completed) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// prerequisitesMet checks every recommendation against completed.
func prerequisitesMet(recs []Recommendation, completed map[string]struct{}) bool {
	for i := range recs {
		if !EvaluatePrerequisites(recs[i].Course.Prerequisites, completed) {
			return false
		}
	}
	return true
}
