// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	Courses           int     `json:"courses"`
	Pathways          int     `json:"pathways"`
	TagIndexReady     bool    `json:"tag_index_ready"`
	TaggedCourses     int     `json:"tagged_courses"`
	Uptime            float64 `json:"uptime"`
}

func (h *Handler) checkHealth(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	status := HealthStatus{
		Version:           h.version,
		DatabaseConnected: h.catalog.Ping(ctx) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if status.DatabaseConnected {
		// Counts are informational; a failure here does not change the status.
		if n, err := h.catalog.CountCourses(ctx); err == nil {
			status.Courses = n
		}
		if n, err := h.catalog.CountPathways(ctx); err == nil {
			status.Pathways = n
		}
	}
	if h.tags != nil {
		if n, err := h.tags.Count(ctx); err == nil {
			status.TagIndexReady = true
			status.TaggedCourses = n
		}
	}

	// The skill index only feeds search, so losing it degrades the
	// service; losing the catalogue makes it unhealthy.
	switch {
	case !status.DatabaseConnected:
		status.Status = "unhealthy"
	case !status.TagIndexReady:
		status.Status = "degraded"
	default:
		status.Status = "healthy"
	}
	return status
}

// Health handles GET /health. It always answers 200 and reports the state
// of each dependency in the payload.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.checkHealth(r.Context()))
}

// HealthLive handles GET /health/live. It returns 200 while the process
// serves requests, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready. It returns 503 until the catalogue
// answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.checkHealth(r.Context())
	if !status.DatabaseConnected {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable,
			ErrCodeServiceUnavailable, "Course catalogue is not reachable", status)
		return
	}
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"ready":   true,
		"version": status.Version,
	})
}
