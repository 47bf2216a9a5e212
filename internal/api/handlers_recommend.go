// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/metrics"
	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/recommend"
)

// Recommend handles POST /pathways/{pathway_id}/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var body RecommendRequest
	if err := decodeJSONBody(r, &body); err != nil {
		if errors.Is(err, io.EOF) {
			rw.BadRequest("Request body is required")
			return
		}
		rw.BadRequest(err.Error())
		return
	}
	if validateRequest(w, r, &body) {
		return
	}

	req := h.engineRequest(r, &body)

	ctx := r.Context()
	if timeout := h.config.API.RecommendTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := h.engine.Recommend(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, recommend.ErrPathwayNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		metrics.RecordRecommendation(outcome, elapsed, 0, 0)
		respondError(w, r, err, pathwayNotFound(req.PathwayID))
		return
	}
	metrics.RecordRecommendation(metrics.OutcomeOK, elapsed, resp.TotalCredits, len(resp.Recommendations))

	logging.Ctx(r.Context()).Info().
		Str("pathway_id", sanitizeLogValue(req.PathwayID)).
		Str("semester", string(req.Semester)).
		Int("selected", len(resp.Recommendations)).
		Int("total_credits", resp.TotalCredits).
		Dur("latency", elapsed).
		Msg("recommendation served")

	rw.Success(resp)
}

// engineRequest converts a validated body into an engine request. Absent
// preferences fall back to the handler defaults field by field.
func (h *Handler) engineRequest(r *http.Request, body *RecommendRequest) recommend.Request {
	semester, _ := models.ParseSemester(body.CurrentSemester)

	completed := make([]string, 0, len(body.CompletedCourses))
	for _, id := range body.CompletedCourses {
		if id = strings.TrimSpace(id); id != "" {
			completed = append(completed, id)
		}
	}

	req := recommend.Request{
		RequestID:        logging.RequestIDFromContext(r.Context()),
		PathwayID:        pathParam(r, "pathway_id"),
		CompletedCourses: completed,
		Semester:         semester,
		Preferences:      h.defaults,
	}
	if body.CreditsPerSemester != nil {
		req.CreditBudget = *body.CreditsPerSemester
	}

	if p := body.Preferences; p != nil {
		if p.MaxDifficulty != nil {
			req.Preferences.MaxDifficulty = *p.MaxDifficulty
		}
		if p.PreferredInstructors != nil {
			req.Preferences.PreferredInstructors = p.PreferredInstructors
		}
		if p.AvoidGenEds != nil {
			req.Preferences.AvoidGenEds = *p.AvoidGenEds
		}
		if p.PrioritizePathway != nil {
			req.Preferences.PrioritizePathway = *p.PrioritizePathway
		}
	}
	return req
}
