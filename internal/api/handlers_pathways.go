// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"fmt"
	"net/http"

	"github.com/tomtom215/pathwise/internal/models"
)

func pathwayNotFound(id string) string {
	return fmt.Sprintf("Pathway with ID '%s' not found", id)
}

// PathwayList is the payload of GET /pathways.
type PathwayList struct {
	Pathways []models.Pathway `json:"pathways"`
}

// ListPathways handles GET /pathways.
func (h *Handler) ListPathways(w http.ResponseWriter, r *http.Request) {
	pathways, err := h.catalog.ListPathways(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if pathways == nil {
		pathways = []models.Pathway{}
	}
	NewResponseWriter(w, r).Success(PathwayList{Pathways: pathways})
}

// GetPathway handles GET /pathways/{pathway_id}.
func (h *Handler) GetPathway(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "pathway_id")
	pathway, err := h.catalog.GetPathway(r.Context(), id)
	if err != nil {
		respondError(w, r, err, pathwayNotFound(id))
		return
	}
	NewResponseWriter(w, r).Success(pathway)
}

// GetPathwayCourses handles GET /pathways/{pathway_id}/courses.
func (h *Handler) GetPathwayCourses(w http.ResponseWriter, r *http.Request) {
	p := newQueryParser(r)
	req := PathwayCoursesRequest{
		Type:           p.strDefault("type", string(models.BucketAll)),
		IncludeDetails: p.boolDefault("include_details", false),
	}
	if p.respondParamError(w, r) || validateRequest(w, r, &req) {
		return
	}
	bucket, _ := models.ParseBucket(req.Type)

	id := pathParam(r, "pathway_id")
	courses, err := h.catalog.PathwayCourses(r.Context(), id, bucket, req.IncludeDetails)
	if err != nil {
		respondError(w, r, err, pathwayNotFound(id))
		return
	}
	NewResponseWriter(w, r).Success(courses)
}
