// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pathwise/internal/models"
)

// ErrPathwayNotFound is returned when the requested pathway does not exist.
var ErrPathwayNotFound = errors.New("pathway not found")

// CourseSource resolves course records.
// FindCourse returns a nil course and a nil error when the ID is unknown.
type CourseSource interface {
	FindCourse(ctx context.Context, courseID string) (*models.Course, error)
}

// PathwaySource resolves pathway records.
// FindPathway returns a nil pathway and a nil error when the ID is unknown.
type PathwaySource interface {
	FindPathway(ctx context.Context, pathwayID string) (*models.Pathway, error)
}

// Engine selects a single-semester course load for a pathway.
//
// It holds no mutable state and is safe for concurrent use. The only
// blocking calls are the repository lookups, and their errors are returned
// unchanged apart from wrapping. Callers record outcome metrics.
type Engine struct {
	config *Config
	logger zerolog.Logger

	pathways PathwaySource
	courses  CourseSource
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, pathways PathwaySource, courses CourseSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if pathways == nil || courses == nil {
		return nil, errors.New("pathway and course sources are required")
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		pathways: pathways,
		courses:  courses,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Recommend builds the recommended course load for req.
//
// Buckets are visited in the order given by Preferences.PrioritizePathway and
// each candidate is accepted greedily in declaration order. Selection stops as
// soon as the credit budget is reached. An unknown pathway yields
// ErrPathwayNotFound; unknown course IDs are skipped.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	pathway, err := e.pathways.FindPathway(ctx, req.PathwayID)
	if err != nil {
		return nil, fmt.Errorf("get pathway: %w", err)
	}
	if pathway == nil {
		return nil, fmt.Errorf("%w: %s", ErrPathwayNotFound, req.PathwayID)
	}

	completed := make(map[string]struct{}, len(req.CompletedCourses))
	for _, id := range req.CompletedCourses {
		completed[id] = struct{}{}
	}

	sel := newSelection(&req)
	for _, plan := range planFor(req.Preferences.PrioritizePathway) {
		done, err := e.scoreBucket(ctx, sel, plan, availableCourses(pathway.Courses(plan.bucket), completed), logger)
		if err != nil {
			return nil, fmt.Errorf("score %s courses: %w", plan.bucket, err)
		}
		if done {
			break
		}
	}

	resp := sel.response()
	if e.config.CheckPrerequisites {
		resp.PrerequisitesSatisfied = prerequisitesMet(resp.Recommendations, completed)
	}

	logger.Debug().
		Int("selected", len(resp.Recommendations)).
		Int("total_credits", resp.TotalCredits).
		Float64("avg_difficulty", resp.AvgDifficulty).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")

	return resp, nil
}

// scoreBucket runs the greedy pass over one bucket. Candidates are resolved in
// chunks of LookupConcurrency so that no more lookups than necessary are made
// once the budget fills. A lookup error only fails the call when the pass
// reaches that candidate, so the result does not depend on the chunk size.
// It reports whether the budget was reached.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) scoreBucket(ctx context.Context, sel *selection, plan bucketPlan, ids []string, logger zerolog.Logger) (bool, error) {
	chunk := e.config.LookupConcurrency
	for start := 0; start < len(ids); start += chunk {
		end := min(start+chunk, len(ids))

		courses, errs := e.resolveCourses(ctx, ids[start:end])

		for i, course := range courses {
			if errs[i] != nil {
				return false, errs[i]
			}
			reason := sel.consider(course, plan)
			if reason != accepted {
				logger.Debug().
					Str("course_id", ids[start+i]).
					Str("bucket", string(plan.bucket)).
					Stringer("reason", reason).
					Msg("candidate skipped")
				continue
			}
			if sel.full() {
				return true, nil
			}
		}
	}
	return false, nil
}

// prepareRequest applies defaults and generates request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.CreditBudget == 0 {
		req.CreditBudget = e.config.DefaultCredits
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("pathway_id", req.PathwayID).
		Str("semester", string(req.Semester)).
		Int("credit_budget", req.CreditBudget).
		Logger()
}
