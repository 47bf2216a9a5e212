// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultCreditHours is applied by the importer when a course record has no
// credit_hours value.
const DefaultCreditHours = 3

// Semester is a term in which a course may be offered.
type Semester string

const (
	SemesterSpring Semester = "spring"
	SemesterSummer Semester = "summer"
	SemesterFall   Semester = "fall"
)

// Semesters lists every valid semester in calendar order.
var Semesters = []Semester{SemesterSpring, SemesterSummer, SemesterFall}

// ParseSemester normalizes s and reports whether it names a semester.
func ParseSemester(s string) (Semester, bool) {
	sem := Semester(strings.ToLower(strings.TrimSpace(s)))
	return sem, sem.Valid()
}

// Valid reports whether s is spring, summer or fall.
func (s Semester) Valid() bool {
	switch s {
	case SemesterSpring, SemesterSummer, SemesterFall:
		return true
	}
	return false
}

// InstructorStats holds historical statistics for one instructor of a course.
// Any field may be nil when no data was collected.
type InstructorStats struct {
	Rating     *float64 `json:"rating"`
	Difficulty *float64 `json:"difficulty"`
	AvgGPA     *float64 `json:"avg_gpa"`
}

// Course is a catalogue entry. Course IDs have the form "DEPT NUMBER".
type Course struct {
	CourseID      string                     `json:"course_id"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description,omitempty"`
	Department    string                     `json:"department"`
	CreditHours   int                        `json:"credit_hours"`
	GenEd         bool                       `json:"gen_ed"`
	Semesters     []Semester                 `json:"semesters"`
	AvgRating     *float64                   `json:"course_avg_rating"`
	AvgDifficulty *float64                   `json:"course_avg_difficulty"`
	AvgGPA        *float64                   `json:"course_avg_gpa"`
	Prerequisites *PrerequisiteNode          `json:"prerequisites"`
	Instructors   map[string]InstructorStats `json:"instructors"`
}

// OfferedIn reports whether the course runs in sem.
func (c *Course) OfferedIn(sem Semester) bool {
	for _, s := range c.Semesters {
		if s == sem {
			return true
		}
	}
	return false
}

// Difficulty returns the average difficulty, treating a missing value as 0.
func (c *Course) Difficulty() float64 {
	if c.AvgDifficulty == nil {
		return 0
	}
	return *c.AvgDifficulty
}

// HasInstructor reports whether name appears in the instructor map.
func (c *Course) HasInstructor(name string) bool {
	_, ok := c.Instructors[name]
	return ok
}

// PrerequisiteType tags a node of a prerequisite expression.
type PrerequisiteType string

const (
	PrereqAnd    PrerequisiteType = "AND"
	PrereqOr     PrerequisiteType = "OR"
	PrereqSingle PrerequisiteType = "SINGLE"
	PrereqRaw    PrerequisiteType = "RAW"
)

// PrerequisiteNode is one node of a prerequisite tree.
//
// AND and OR nodes carry children in Courses, SINGLE carries a course ID in
// Course and RAW keeps the unparsed catalogue text. The pipeline emits the
// children of AND/OR nodes as bare course ID strings; those decode as SINGLE
// nodes.
type PrerequisiteNode struct {
	Type    PrerequisiteType   `json:"type"`
	Courses []PrerequisiteNode `json:"courses,omitempty"`
	Course  string             `json:"course,omitempty"`
	Text    string             `json:"text,omitempty"`
}

// UnmarshalJSON accepts either a node object or a bare course ID string.
func (n *PrerequisiteNode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode prerequisite course id: %w", err)
		}
		*n = PrerequisiteNode{Type: PrereqSingle, Course: id}
		return nil
	}

	type plain PrerequisiteNode
	var node plain
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("decode prerequisite node: %w", err)
	}
	node.Type = PrerequisiteType(strings.ToUpper(string(node.Type)))
	*n = PrerequisiteNode(node)
	return nil
}

// Validate checks the tree shape.
func (n *PrerequisiteNode) Validate() error {
	switch n.Type {
	case PrereqAnd, PrereqOr:
		for i := range n.Courses {
			if err := n.Courses[i].Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", n.Type, i, err)
			}
		}
		return nil
	case PrereqSingle:
		if n.Course == "" {
			return fmt.Errorf("SINGLE node without course")
		}
		return nil
	case PrereqRaw:
		return nil
	default:
		return fmt.Errorf("unknown prerequisite type %q", n.Type)
	}
}

// CourseIDs returns every course ID referenced by the tree, depth first.
func (n *PrerequisiteNode) CourseIDs() []string {
	if n == nil {
		return nil
	}
	var ids []string
	var walk func(node *PrerequisiteNode)
	walk = func(node *PrerequisiteNode) {
		if node.Type == PrereqSingle && node.Course != "" {
			ids = append(ids, node.Course)
		}
		for i := range node.Courses {
			walk(&node.Courses[i])
		}
	}
	walk(n)
	return ids
}
