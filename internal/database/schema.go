// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"fmt"
)

const (
	tableCourses  = "courses"
	tablePathways = "pathways"
)

// Semester availability is stored as one boolean column per term so the
// semester filter is a plain equality predicate.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		course_id             VARCHAR PRIMARY KEY,
		title                 VARCHAR NOT NULL,
		description           VARCHAR NOT NULL DEFAULT '',
		department            VARCHAR NOT NULL,
		credit_hours          INTEGER NOT NULL,
		gen_ed                BOOLEAN NOT NULL DEFAULT FALSE,
		offered_spring        BOOLEAN NOT NULL DEFAULT FALSE,
		offered_summer        BOOLEAN NOT NULL DEFAULT FALSE,
		offered_fall          BOOLEAN NOT NULL DEFAULT FALSE,
		course_avg_rating     DOUBLE,
		course_avg_difficulty DOUBLE,
		course_avg_gpa        DOUBLE,
		prerequisites         VARCHAR,
		instructors           VARCHAR
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_department ON courses(department)`,
	`CREATE TABLE IF NOT EXISTS pathways (
		id                  VARCHAR PRIMARY KEY,
		position            INTEGER NOT NULL,
		name                VARCHAR NOT NULL,
		description         VARCHAR NOT NULL DEFAULT '',
		skills_required     VARCHAR NOT NULL,
		skill_weights       VARCHAR,
		core_courses        VARCHAR NOT NULL,
		recommended_courses VARCHAR NOT NULL,
		optional_courses    VARCHAR NOT NULL
	)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
