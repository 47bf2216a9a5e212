// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package corpus

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pathwise/internal/models"
)

// courseRecord is a course as written by the scraping pipeline. Credit hours
// arrive as a number, a list of allowed values, a string or null.
type courseRecord struct {
	CourseID      string                            `json:"course_id"`
	Title         string                            `json:"title"`
	Description   string                            `json:"description"`
	Department    string                            `json:"department"`
	CreditHours   json.RawMessage                   `json:"credit_hours"`
	GenEd         bool                              `json:"gen_ed"`
	Semesters     []string                          `json:"semesters"`
	AvgRating     *float64                          `json:"course_avg_rating"`
	AvgDifficulty *float64                          `json:"course_avg_difficulty"`
	AvgGPA        *float64                          `json:"course_avg_gpa"`
	Prerequisites json.RawMessage                   `json:"prerequisites"`
	Instructors   map[string]models.InstructorStats `json:"instructors"`
}

func (r *courseRecord) empty() bool {
	return r.CourseID == "" && r.Title == "" && len(r.CreditHours) == 0
}

// pathwayRecord accepts both skills_required and the generator's
// required_skills spelling. Pathways without an id get one from their name.
type pathwayRecord struct {
	ID                 string             `json:"id" yaml:"id"`
	Name               string             `json:"name" yaml:"name"`
	Description        string             `json:"description" yaml:"description"`
	SkillsRequired     []string           `json:"skills_required" yaml:"skills_required"`
	RequiredSkills     []string           `json:"required_skills" yaml:"required_skills"`
	SkillWeights       map[string]float64 `json:"skill_weights" yaml:"skill_weights"`
	CoreCourses        []string           `json:"core_courses" yaml:"core_courses"`
	RecommendedCourses []string           `json:"recommended_courses" yaml:"recommended_courses"`
	OptionalCourses    []string           `json:"optional_courses" yaml:"optional_courses"`
}

var digitsRe = regexp.MustCompile(`\d+`)

// parseCreditHours returns the credit hours encoded in raw and whether a
// value was present. A list yields its smallest entry.
func parseCreditHours(raw json.RawMessage) (int, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	switch raw[0] {
	case '[':
		var values []float64
		if err := json.Unmarshal(raw, &values); err != nil {
			return 0, false, fmt.Errorf("credit_hours list: %w", err)
		}
		if len(values) == 0 {
			return 0, false, nil
		}
		sort.Float64s(values)
		return int(math.Round(values[0])), true, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, fmt.Errorf("credit_hours string: %w", err)
		}
		m := digitsRe.FindString(s)
		if m == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false, fmt.Errorf("credit_hours %q: %w", s, err)
		}
		return n, true, nil
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, false, fmt.Errorf("credit_hours: %w", err)
		}
		return int(math.Round(f)), true, nil
	}
}

// normalizeCourseID trims and collapses internal whitespace: "cs  225 " -> "CS 225".
func normalizeCourseID(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), " "))
}

// departmentOf returns the letters before the course number.
func departmentOf(id string) string {
	if i := strings.IndexByte(id, ' '); i > 0 {
		return id[:i]
	}
	return id
}

func normalizeSemesters(in []string) []models.Semester {
	out := make([]models.Semester, 0, len(in))
	seen := make(map[models.Semester]bool, len(in))
	for _, s := range in {
		sem, ok := models.ParseSemester(s)
		if !ok || seen[sem] {
			continue
		}
		seen[sem] = true
		out = append(out, sem)
	}
	return out
}

// dedupeIDs normalises ids and drops repeats, keeping first occurrence order.
func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = normalizeCourseID(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a pathway name into an id: "ML / AI Engineer" -> "ml-ai-engineer".
func slugify(name string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func (r *pathwayRecord) toPathway() models.Pathway {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = slugify(r.Name)
	}
	skills := r.SkillsRequired
	if len(skills) == 0 {
		skills = r.RequiredSkills
	}
	if skills == nil {
		skills = []string{}
	}
	return models.Pathway{
		ID:                 id,
		Name:               r.Name,
		Description:        r.Description,
		SkillsRequired:     skills,
		SkillWeights:       r.SkillWeights,
		CoreCourses:        dedupeIDs(r.CoreCourses),
		RecommendedCourses: dedupeIDs(r.RecommendedCourses),
		OptionalCourses:    dedupeIDs(r.OptionalCourses),
	}
}
