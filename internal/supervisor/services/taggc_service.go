// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

const defaultGCInterval = 10 * time.Minute

// GarbageCollector is implemented by *tagindex.Index.
type GarbageCollector interface {
	RunGC() error
}

// TagIndexGCService runs value log GC on the tag index at a fixed interval.
// A failed pass is logged and retried on the next tick. The service exits
// with suture.ErrDoNotRestart once the index reports it has been closed.
type TagIndexGCService struct {
	index    GarbageCollector
	interval time.Duration
	name     string
	logger   zerolog.Logger
}

// NewTagIndexGCService creates the GC loop. A non-positive interval means 10m.
func NewTagIndexGCService(index GarbageCollector, interval time.Duration) *TagIndexGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &TagIndexGCService{
		index:    index,
		interval: interval,
		name:     "tag-index-gc",
		logger:   logging.WithComponent("tag-index-gc"),
	}
}

// Serve implements suture.Service.
func (s *TagIndexGCService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("tag index GC loop starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.index.RunGC(); err != nil {
				if errors.Is(err, tagindex.ErrClosed) {
					s.logger.Info().Msg("tag index closed, stopping GC loop")
					return suture.ErrDoNotRestart
				}
				s.logger.Warn().Err(err).Msg("tag index GC pass failed")
			}
		}
	}
}

// String names the service in supervisor events.
func (s *TagIndexGCService) String() string {
	return s.name
}
