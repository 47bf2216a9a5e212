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

var courseColumns = []string{
	"course_id", "title", "description", "department", "credit_hours", "gen_ed",
	"offered_spring", "offered_summer", "offered_fall",
	"course_avg_rating", "course_avg_difficulty", "course_avg_gpa",
	"prerequisites", "instructors",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var (
		c                     models.Course
		spring, summer, fall  bool
		rating, diff, gpa     sql.NullFloat64
		prereqJSON, instrJSON sql.NullString
	)
	if err := row.Scan(
		&c.CourseID, &c.Title, &c.Description, &c.Department, &c.CreditHours, &c.GenEd,
		&spring, &summer, &fall,
		&rating, &diff, &gpa,
		&prereqJSON, &instrJSON,
	); err != nil {
		return nil, err
	}

	c.Semesters = make([]models.Semester, 0, 3)
	for _, s := range []struct {
		on  bool
		sem models.Semester
	}{{spring, models.SemesterSpring}, {summer, models.SemesterSummer}, {fall, models.SemesterFall}} {
		if s.on {
			c.Semesters = append(c.Semesters, s.sem)
		}
	}

	c.AvgRating = nullFloat(rating)
	c.AvgDifficulty = nullFloat(diff)
	c.AvgGPA = nullFloat(gpa)

	if prereqJSON.Valid && prereqJSON.String != "" {
		var node models.PrerequisiteNode
		if err := json.Unmarshal([]byte(prereqJSON.String), &node); err != nil {
			return nil, fmt.Errorf("decode prerequisites for %s: %w", c.CourseID, err)
		}
		c.Prerequisites = &node
	}

	c.Instructors = map[string]models.InstructorStats{}
	if instrJSON.Valid && instrJSON.String != "" {
		if err := json.Unmarshal([]byte(instrJSON.String), &c.Instructors); err != nil {
			return nil, fmt.Errorf("decode instructors for %s: %w", c.CourseID, err)
		}
	}

	return &c, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func scanCourses(rows *sql.Rows) ([]models.Course, error) {
	defer closeWithLog(rows, "rows")
	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// FindCourse returns the course with the given ID, or nil when it does not
// exist.
func (db *DB) FindCourse(ctx context.Context, courseID string) (*models.Course, error) {
	query, args, err := psql.Select(courseColumns...).From(tableCourses).
		Where(sq.Eq{"course_id": courseID}).ToSql()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c, err := scanCourse(db.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	metrics.RecordDBQuery("find", tableCourses, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("find course %s: %w", courseID, err)
	}
	return c, nil
}

// GetCourse is FindCourse that reports a missing course as ErrCourseNotFound.
func (db *DB) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	c, err := db.FindCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	return c, nil
}

// ListCourses returns one page of courses matching filter plus the total
// number of matches.
func (db *DB) ListCourses(ctx context.Context, filter CourseFilter, order CourseSort, page, limit int) ([]models.Course, int, error) {
	countQ, err := filter.apply(psql.Select("COUNT(*)").From(tableCourses))
	if err != nil {
		return nil, 0, err
	}
	total, err := db.queryCount(ctx, tableCourses, countQ)
	if err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	listQ, err := filter.apply(psql.Select(courseColumns...).From(tableCourses))
	if err != nil {
		return nil, 0, err
	}
	listQ = order.apply(listQ).
		Limit(uint64(limit)).
		Offset(uint64(models.Offset(page, limit)))

	rows, err := db.queryRows(ctx, "list", tableCourses, listQ)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	courses, err := scanCourses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan courses: %w", err)
	}
	return courses, total, nil
}

// CoursesByIDs returns the courses whose IDs appear in ids, in the order of
// ids. Unknown IDs are skipped.
func (db *DB) CoursesByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	rows, err := db.queryRows(ctx, "list", tableCourses,
		psql.Select(courseColumns...).From(tableCourses).Where(sq.Eq{"course_id": ids}))
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	found, err := scanCourses(rows)
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}

	byID := make(map[string]models.Course, len(found))
	for _, c := range found {
		byID[c.CourseID] = c
	}
	ordered := make([]models.Course, 0, len(found))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok && !seen[id] {
			ordered = append(ordered, c)
			seen[id] = true
		}
	}
	return ordered, nil
}

// CountCourses returns the number of catalogue courses.
func (db *DB) CountCourses(ctx context.Context) (int, error) {
	return db.queryCount(ctx, tableCourses, psql.Select("COUNT(*)").From(tableCourses))
}

// UpsertCourses inserts or replaces courses in one transaction.
func (db *DB) UpsertCourses(ctx context.Context, courses []models.Course) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", tableCourses, time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range courses {
		c := &courses[i]
		row, err := courseRow(c)
		if err != nil {
			return err
		}
		query, args, err := psql.Insert(tableCourses).Options("OR REPLACE").
			Columns(courseColumns...).Values(row...).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert course %s: %w", c.CourseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func courseRow(c *models.Course) ([]any, error) {
	var prereq, instr any
	if c.Prerequisites != nil {
		b, err := json.Marshal(c.Prerequisites)
		if err != nil {
			return nil, fmt.Errorf("encode prerequisites for %s: %w", c.CourseID, err)
		}
		prereq = string(b)
	}
	if len(c.Instructors) > 0 {
		b, err := json.Marshal(c.Instructors)
		if err != nil {
			return nil, fmt.Errorf("encode instructors for %s: %w", c.CourseID, err)
		}
		instr = string(b)
	}
	return []any{
		c.CourseID, c.Title, c.Description, c.Department, c.CreditHours, c.GenEd,
		c.OfferedIn(models.SemesterSpring), c.OfferedIn(models.SemesterSummer), c.OfferedIn(models.SemesterFall),
		floatArg(c.AvgRating), floatArg(c.AvgDifficulty), floatArg(c.AvgGPA),
		prereq, instr,
	}, nil
}

// floatArg turns an optional statistic into a driver argument.
func floatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
