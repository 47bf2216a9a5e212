// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package api serves the Pathwise REST API under /api/v1.
//
// Handlers are split by resource:
//   - handlers_courses.go: course listing, search, detail, prerequisites and instructors
//   - handlers_pathways.go: pathway listing, detail and course buckets
//   - handlers_recommend.go: the recommendation endpoint
//   - handlers_tagged.go: the skill index
//   - handlers_health.go: health and readiness
//
// Every response uses the APIResponse envelope from response.go.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/recommend"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

// TagIndex is the read surface of the course skill index.
type TagIndex interface {
	Get(ctx context.Context, courseID string) (*models.TaggedCourse, error)
	List(ctx context.Context, f tagindex.Filter, page, limit int) ([]models.TaggedCourse, int, error)
	CoursesWithSkills(ctx context.Context, skills []string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Recommender produces course recommendations.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

var (
	_ TagIndex    = (*tagindex.Index)(nil)
	_ Recommender = (*recommend.Engine)(nil)
)

// Handler holds the dependencies shared by all API handlers.
type Handler struct {
	catalog   database.Catalog
	tags      TagIndex
	engine    Recommender
	defaults  recommend.Preferences
	config    *config.Config
	version   string
	startTime time.Time
}

// Deps groups the collaborators of a Handler.
type Deps struct {
	Catalog database.Catalog
	Tags    TagIndex
	Engine  Recommender

	// Defaults are the preferences applied when a request omits them.
	Defaults recommend.Preferences
	Version  string
}

// NewHandler creates a handler. Catalog and Engine are required; Tags may be
// nil, in which case skill search is skipped and the tag endpoints report
// 503.
func NewHandler(cfg *config.Config, deps Deps) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Catalog == nil || deps.Engine == nil {
		return nil, errors.New("catalog and engine are required")
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		catalog:   deps.Catalog,
		tags:      deps.Tags,
		engine:    deps.Engine,
		defaults:  deps.Defaults,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}, nil
}
