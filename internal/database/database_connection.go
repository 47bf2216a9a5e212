// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/pathwise/internal/metrics"
)

// configureConnectionPool sizes the pool for concurrent catalogue reads.
// All connections share one DuckDB instance, so ":memory:" is shared too.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// queryRows runs a squirrel select and records its latency.
func (db *DB) queryRows(ctx context.Context, op, table string, b sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	return rows, err
}

// queryCount runs a COUNT(*) select.
func (db *DB) queryCount(ctx context.Context, table string, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	var total int
	err = db.conn.QueryRowContext(ctx, query, args...).Scan(&total)
	metrics.RecordDBQuery("count", table, time.Since(start), err)
	return total, err
}
