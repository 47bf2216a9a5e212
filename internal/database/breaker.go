// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/pathwise/internal/config"
	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/models"
)

// ErrUnavailable is returned while the circuit breaker rejects requests.
var ErrUnavailable = errors.New("catalogue temporarily unavailable")

// Catalog is the read surface of the course catalogue.
type Catalog interface {
	FindCourse(ctx context.Context, courseID string) (*models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	ListCourses(ctx context.Context, filter CourseFilter, order CourseSort, page, limit int) ([]models.Course, int, error)
	SearchCourses(ctx context.Context, search CourseSearch, page, limit int) ([]models.Course, int, error)
	ListPathways(ctx context.Context) ([]models.Pathway, error)
	FindPathway(ctx context.Context, id string) (*models.Pathway, error)
	GetPathway(ctx context.Context, id string) (*models.Pathway, error)
	PathwayCourses(ctx context.Context, id string, bucket models.Bucket, includeDetails bool) (*PathwayCourses, error)
	CountCourses(ctx context.Context) (int, error)
	CountPathways(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

var (
	_ Catalog = (*DB)(nil)
	_ Catalog = (*Breaker)(nil)
)

// Breaker guards a Catalog with a circuit breaker. Not-found results and
// cancelled requests count as successes; every other error counts towards
// tripping. Rejected calls fail fast with ErrUnavailable and are never
// retried.
type Breaker struct {
	next Catalog
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreaker wraps next using the thresholds in cfg.
func NewBreaker(next Catalog, cfg *config.BreakerConfig) *Breaker {
	name := "duckdb-catalogue"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.TripRatio {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_ratio", ratio).
					Msg("Opening catalogue circuit breaker")
				return true
			}
			return false
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Breaker{next: next, cb: cb, name: name}
}

// State reports the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// isSuccessful reports whether err should leave the breaker's failure count
// untouched.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrPathwayNotFound) ||
		errors.Is(err, context.Canceled)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// guard runs fn through the breaker and restores its static result type.
func guard[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		result := "failure"
		if isSuccessful(err) {
			result = "success"
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, result).Inc()
		return zero, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	if res == nil {
		return zero, nil
	}
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return typed, nil
}

type coursePage struct {
	courses []models.Course
	total   int
}

func (b *Breaker) FindCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return guard(b, func() (*models.Course, error) { return b.next.FindCourse(ctx, courseID) })
}

func (b *Breaker) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return guard(b, func() (*models.Course, error) { return b.next.GetCourse(ctx, courseID) })
}

func (b *Breaker) ListCourses(ctx context.Context, filter CourseFilter, order CourseSort, page, limit int) ([]models.Course, int, error) {
	p, err := guard(b, func() (coursePage, error) {
		courses, total, err := b.next.ListCourses(ctx, filter, order, page, limit)
		return coursePage{courses, total}, err
	})
	return p.courses, p.total, err
}

func (b *Breaker) SearchCourses(ctx context.Context, search CourseSearch, page, limit int) ([]models.Course, int, error) {
	p, err := guard(b, func() (coursePage, error) {
		courses, total, err := b.next.SearchCourses(ctx, search, page, limit)
		return coursePage{courses, total}, err
	})
	return p.courses, p.total, err
}

func (b *Breaker) ListPathways(ctx context.Context) ([]models.Pathway, error) {
	return guard(b, func() ([]models.Pathway, error) { return b.next.ListPathways(ctx) })
}

func (b *Breaker) FindPathway(ctx context.Context, id string) (*models.Pathway, error) {
	return guard(b, func() (*models.Pathway, error) { return b.next.FindPathway(ctx, id) })
}

func (b *Breaker) GetPathway(ctx context.Context, id string) (*models.Pathway, error) {
	return guard(b, func() (*models.Pathway, error) { return b.next.GetPathway(ctx, id) })
}

func (b *Breaker) PathwayCourses(ctx context.Context, id string, bucket models.Bucket, includeDetails bool) (*PathwayCourses, error) {
	return guard(b, func() (*PathwayCourses, error) { return b.next.PathwayCourses(ctx, id, bucket, includeDetails) })
}

func (b *Breaker) CountCourses(ctx context.Context) (int, error) {
	return guard(b, func() (int, error) { return b.next.CountCourses(ctx) })
}

func (b *Breaker) CountPathways(ctx context.Context) (int, error) {
	return guard(b, func() (int, error) { return b.next.CountPathways(ctx) })
}

// Ping bypasses the breaker so health checks observe the real database.
func (b *Breaker) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}
