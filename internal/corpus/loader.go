// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/validation"
)

// Format selects the pathway file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the pathway format from a file extension.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeCourses reads a courses object keyed by course id. Objects grouped by
// department ({"CS": {"CS 124": {...}}}) are flattened. Courses are returned
// sorted by id with defaults applied; stats counts what was normalised.
func DecodeCourses(r io.Reader, stats *Stats) ([]models.Course, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read courses: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	records := make(map[string]courseRecord, len(top))
	for key, raw := range top {
		var rec courseRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode course %s: %w", key, err)
		}
		if !rec.empty() {
			addRecord(records, key, rec, stats)
			continue
		}

		// Department grouping.
		var group map[string]courseRecord
		if err := json.Unmarshal(raw, &group); err != nil {
			return nil, fmt.Errorf("decode department %s: %w", key, err)
		}
		for id, rec := range group {
			addRecord(records, id, rec, stats)
		}
	}

	courses := make([]models.Course, 0, len(records))
	for _, rec := range records {
		c, err := toCourse(&rec, stats)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseID < courses[j].CourseID })
	return courses, nil
}

func addRecord(records map[string]courseRecord, key string, rec courseRecord, stats *Stats) {
	id := normalizeCourseID(rec.CourseID)
	if id == "" {
		id = normalizeCourseID(key)
	}
	if id == "" {
		stats.Skipped++
		return
	}
	if _, dup := records[id]; dup {
		logging.Warn().Str("course_id", id).Msg("Duplicate course in corpus, keeping first")
		stats.Skipped++
		return
	}
	rec.CourseID = id
	records[id] = rec
}

func toCourse(rec *courseRecord, stats *Stats) (models.Course, error) {
	credits, ok, err := parseCreditHours(rec.CreditHours)
	if err != nil {
		return models.Course{}, fmt.Errorf("course %s: %w", rec.CourseID, err)
	}
	if !ok || credits < 0 {
		credits = models.DefaultCreditHours
		stats.DefaultedCredits++
	}

	if !validation.ValidCourseID(rec.CourseID) {
		logging.Debug().Str("course_id", rec.CourseID).Msg("Course id does not follow DEPT NUMBER form")
	}

	dept := strings.TrimSpace(rec.Department)
	if dept == "" {
		dept = departmentOf(rec.CourseID)
	}

	instructors := rec.Instructors
	if instructors == nil {
		instructors = map[string]models.InstructorStats{}
	}

	return models.Course{
		CourseID:      rec.CourseID,
		Title:         strings.TrimSpace(rec.Title),
		Description:   strings.TrimSpace(rec.Description),
		Department:    dept,
		CreditHours:   credits,
		GenEd:         rec.GenEd,
		Semesters:     normalizeSemesters(rec.Semesters),
		AvgRating:     rec.AvgRating,
		AvgDifficulty: rec.AvgDifficulty,
		AvgGPA:        rec.AvgGPA,
		Prerequisites: decodePrerequisites(rec.CourseID, rec.Prerequisites, stats),
		Instructors:   instructors,
	}, nil
}

// decodePrerequisites returns nil for absent or malformed trees.
func decodePrerequisites(courseID string, raw json.RawMessage, stats *Stats) *models.PrerequisiteNode {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var node models.PrerequisiteNode
	err := json.Unmarshal(raw, &node)
	if err == nil {
		err = node.Validate()
	}
	if err != nil {
		logging.Warn().Err(err).Str("course_id", courseID).Msg("Dropping malformed prerequisites")
		stats.DroppedPrereqs++
		return nil
	}
	return &node
}

// pathwayEnvelope is the generator's {"pathways": [...]} wrapper.
type pathwayEnvelope struct {
	Pathways []pathwayRecord `json:"pathways" yaml:"pathways"`
}

// DecodePathways reads a pathway list, bare or wrapped in {"pathways": [...]}.
// File order is kept; later duplicates of an id are dropped.
func DecodePathways(r io.Reader, format Format, stats *Stats) ([]models.Pathway, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pathways: %w", err)
	}

	records, err := decodePathwayRecords(data, format)
	if err != nil {
		return nil, err
	}

	out := make([]models.Pathway, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		p := records[i].toPathway()
		if p.ID == "" {
			stats.Skipped++
			continue
		}
		if seen[p.ID] {
			logging.Warn().Str("pathway_id", p.ID).Msg("Duplicate pathway in corpus, keeping first")
			stats.Skipped++
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func decodePathwayRecords(data []byte, format Format) ([]pathwayRecord, error) {
	switch format {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("decode pathways yaml: %w", err)
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		if node.Content[0].Kind == yaml.MappingNode {
			var env pathwayEnvelope
			if err := node.Decode(&env); err != nil {
				return nil, fmt.Errorf("decode pathways yaml: %w", err)
			}
			return env.Pathways, nil
		}
		var records []pathwayRecord
		if err := node.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode pathways yaml: %w", err)
		}
		return records, nil

	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var env pathwayEnvelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return nil, fmt.Errorf("decode pathways json: %w", err)
			}
			return env.Pathways, nil
		}
		var records []pathwayRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode pathways json: %w", err)
		}
		return records, nil
	}
	return nil, fmt.Errorf("unknown pathway format %q", format)
}

// DecodeTagged reads tagged courses as either a list of {course_id, skills}
// or an object keyed by course id whose values are such records or bare
// skill lists. The result is sorted by course id.
func DecodeTagged(r io.Reader, stats *Stats) ([]models.TaggedCourse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tagged courses: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty tagged courses file")
	}

	var list []models.TaggedCourse
	if data[0] == '[' {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode tagged courses: %w", err)
		}
	} else {
		var byID map[string]json.RawMessage
		if err := json.Unmarshal(data, &byID); err != nil {
			return nil, fmt.Errorf("decode tagged courses: %w", err)
		}
		for id, raw := range byID {
			tc := models.TaggedCourse{CourseID: id}
			raw = bytes.TrimSpace(raw)
			if len(raw) > 0 && raw[0] == '[' {
				if err := json.Unmarshal(raw, &tc.Skills); err != nil {
					return nil, fmt.Errorf("decode skills for %s: %w", id, err)
				}
			} else if err := json.Unmarshal(raw, &tc); err != nil {
				return nil, fmt.Errorf("decode tagged course %s: %w", id, err)
			}
			if tc.CourseID == "" {
				tc.CourseID = id
			}
			list = append(list, tc)
		}
	}

	out := make([]models.TaggedCourse, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, tc := range list {
		tc.CourseID = normalizeCourseID(tc.CourseID)
		if tc.CourseID == "" || seen[tc.CourseID] {
			stats.Skipped++
			continue
		}
		seen[tc.CourseID] = true
		if tc.Skills == nil {
			tc.Skills = []string{}
		}
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}
