// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pathwise/internal/logging"
)

const defaultSweepInterval = 5 * time.Minute

// Sweeper is implemented by *cache.CourseCache.
type Sweeper interface {
	Sweep() int
	Stats() (hits, misses int64, size int)
}

// CacheSweepService drops expired course cache entries at a fixed interval.
type CacheSweepService struct {
	cache    Sweeper
	interval time.Duration
	name     string
	logger   zerolog.Logger
}

// NewCacheSweepService creates the sweep loop. A non-positive interval means 5m.
func NewCacheSweepService(cache Sweeper, interval time.Duration) *CacheSweepService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &CacheSweepService{
		cache:    cache,
		interval: interval,
		name:     "course-cache-sweep",
		logger:   logging.WithComponent("course-cache-sweep"),
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed := s.cache.Sweep()
			hits, misses, size := s.cache.Stats()
			s.logger.Debug().
				Int("removed", removed).
				Int("size", size).
				Int64("hits", hits).
				Int64("misses", misses).
				Msg("course cache swept")
		}
	}
}

// String names the service in supervisor events.
func (s *CacheSweepService) String() string {
	return s.name
}
