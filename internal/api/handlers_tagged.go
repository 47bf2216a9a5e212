// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/tagindex"
)

func (h *Handler) tagsAvailable(w http.ResponseWriter, r *http.Request) bool {
	if h.tags != nil {
		return true
	}
	NewResponseWriter(w, r).ServiceUnavailable("Skill index is not configured")
	return false
}

// ListTaggedCourses handles GET /tagged-courses.
func (h *Handler) ListTaggedCourses(w http.ResponseWriter, r *http.Request) {
	if !h.tagsAvailable(w, r) {
		return
	}

	p := newQueryParser(r)
	req := TaggedListRequest{
		CourseID: p.str("course_id"),
		Skills:   p.list("skills"),
		Page:     p.intDefault("page", 1),
		Limit:    p.intDefault("limit", h.config.API.DefaultPageSize),
	}
	if p.respondParamError(w, r) || validateRequest(w, r, &req) ||
		checkLimit(w, r, req.Limit, h.config.API.MaxTagPageSize) {
		return
	}

	tagged, total, err := h.tags.List(r.Context(), tagindex.Filter{CourseID: req.CourseID, Skills: req.Skills}, req.Page, req.Limit)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if tagged == nil {
		tagged = []models.TaggedCourse{}
	}
	NewResponseWriter(w, r).SuccessWithPagination(tagged, models.NewPagination(req.Page, req.Limit, total))
}

// GetTaggedCourse handles GET /tagged-courses/{course_id}.
func (h *Handler) GetTaggedCourse(w http.ResponseWriter, r *http.Request) {
	if !h.tagsAvailable(w, r) {
		return
	}

	id := pathParam(r, "course_id")
	tagged, err := h.tags.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err, fmt.Sprintf("Tagged course with ID '%s' not found", id))
		return
	}
	NewResponseWriter(w, r).Success(tagged)
}
