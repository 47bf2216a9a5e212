// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

/*
Package models defines the data structures shared across Pathwise.

Courses, pathways and tagged courses are immutable reference data produced
by the offline course pipeline and loaded by the corpus importer. Nothing
in the request path mutates them.

Key Components:

  - Course: catalogue entry with ratings, semesters, prerequisites and instructors
  - PrerequisiteNode: AND/OR/SINGLE/RAW prerequisite expression tree
  - Pathway: career track owning core, recommended and optional course lists
  - TaggedCourse: course to inferred skill tags
  - Pagination: page metadata returned by every list endpoint
  - APIError: structured error details used by validation and the API layer
*/
package models
