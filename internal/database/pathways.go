// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/models"
)

var pathwayColumns = []string{
	"id", "name", "description", "skills_required", "skill_weights",
	"core_courses", "recommended_courses", "optional_courses",
}

func scanPathway(row rowScanner) (*models.Pathway, error) {
	var (
		p                           models.Pathway
		skills, core, rec, optional string
		weights                     sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &skills, &weights, &core, &rec, &optional); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		raw string
		dst *[]string
	}{
		{skills, &p.SkillsRequired},
		{core, &p.CoreCourses},
		{rec, &p.RecommendedCourses},
		{optional, &p.OptionalCourses},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("decode pathway %s: %w", p.ID, err)
		}
	}
	if weights.Valid && weights.String != "" {
		if err := json.Unmarshal([]byte(weights.String), &p.SkillWeights); err != nil {
			return nil, fmt.Errorf("decode skill weights for %s: %w", p.ID, err)
		}
	}
	return &p, nil
}

// ListPathways returns every pathway in import order.
func (db *DB) ListPathways(ctx context.Context) ([]models.Pathway, error) {
	rows, err := db.queryRows(ctx, "list", tablePathways,
		psql.Select(pathwayColumns...).From(tablePathways).OrderBy("position ASC", "id ASC"))
	if err != nil {
		return nil, fmt.Errorf("list pathways: %w", err)
	}
	defer closeWithLog(rows, "rows")

	pathways := []models.Pathway{}
	for rows.Next() {
		p, err := scanPathway(rows)
		if err != nil {
			return nil, err
		}
		pathways = append(pathways, *p)
	}
	return pathways, rows.Err()
}

// FindPathway returns the pathway with the given ID, or nil when it does not
// exist.
func (db *DB) FindPathway(ctx context.Context, id string) (*models.Pathway, error) {
	query, args, err := psql.Select(pathwayColumns...).From(tablePathways).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	p, err := scanPathway(db.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	metrics.RecordDBQuery("find", tablePathways, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("find pathway %s: %w", id, err)
	}
	return p, nil
}

// GetPathway is FindPathway that reports a missing pathway as
// ErrPathwayNotFound.
func (db *DB) GetPathway(ctx context.Context, id string) (*models.Pathway, error) {
	p, err := db.FindPathway(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPathwayNotFound, id)
	}
	return p, nil
}

// CountPathways returns the number of pathways.
func (db *DB) CountPathways(ctx context.Context) (int, error) {
	return db.queryCount(ctx, tablePathways, psql.Select("COUNT(*)").From(tablePathways))
}

// BucketCourses is one bucket of a pathway, either as IDs or with full
// course records.
type BucketCourses struct {
	IDs     []string
	Details []models.Course
}

// MarshalJSON emits the course records when they were requested and the
// bare IDs otherwise.
func (b BucketCourses) MarshalJSON() ([]byte, error) {
	if b.Details != nil {
		return json.Marshal(b.Details)
	}
	if b.IDs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.IDs)
}

// PathwayCourses lists the courses of a pathway per bucket.
type PathwayCourses struct {
	PathwayID string                          `json:"pathway_id"`
	Courses   map[models.Bucket]BucketCourses `json:"courses"`
}

// PathwayCourses returns the course lists of one pathway. bucket may be
// BucketAll. With includeDetails the lists hold the catalogue records of the
// courses that exist, in pathway order.
func (db *DB) PathwayCourses(ctx context.Context, id string, bucket models.Bucket, includeDetails bool) (*PathwayCourses, error) {
	p, err := db.GetPathway(ctx, id)
	if err != nil {
		return nil, err
	}

	buckets := models.Buckets
	if bucket != models.BucketAll {
		buckets = []models.Bucket{bucket}
	}

	result := &PathwayCourses{PathwayID: p.ID, Courses: make(map[models.Bucket]BucketCourses, len(buckets))}
	for _, b := range buckets {
		ids := p.Courses(b)
		if !includeDetails {
			result.Courses[b] = BucketCourses{IDs: ids}
			continue
		}
		courses, err := db.CoursesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		result.Courses[b] = BucketCourses{Details: courses}
	}
	return result, nil
}

// UpsertPathways inserts or replaces pathways in one transaction. The slice
// order becomes the listing order.
func (db *DB) UpsertPathways(ctx context.Context, pathways []models.Pathway) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", tablePathways, time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range pathways {
		p := &pathways[i]
		row, err := pathwayRow(p)
		if err != nil {
			return err
		}
		query, args, err := psql.Insert(tablePathways).Options("OR REPLACE").
			Columns(append([]string{"position"}, pathwayColumns...)...).
			Values(append([]any{i}, row...)...).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert pathway %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func pathwayRow(p *models.Pathway) ([]any, error) {
	encode := func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode pathway %s: %w", p.ID, err)
		}
		return string(b), nil
	}
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}

	skills, err := encode(orEmpty(p.SkillsRequired))
	if err != nil {
		return nil, err
	}
	row := []any{p.ID, p.Name, p.Description, skills}

	var weights any
	if len(p.SkillWeights) > 0 {
		s, err := encode(p.SkillWeights)
		if err != nil {
			return nil, err
		}
		weights = s
	}
	row = append(row, weights)

	for _, list := range [][]string{p.CoreCourses, p.RecommendedCourses, p.OptionalCourses} {
		s, err := encode(orEmpty(list))
		if err != nil {
			return nil, err
		}
		row = append(row, s)
	}
	return row, nil
}
