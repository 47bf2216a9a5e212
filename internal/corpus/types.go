// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package corpus

import (
	"time"
)

// Stats holds statistics about an import run.
type Stats struct {
	// Courses, Pathways and Tagged count the records written (or that would
	// have been written on a dry run).
	Courses  int `json:"courses"`
	Pathways int `json:"pathways"`
	Tagged   int `json:"tagged"`

	// Skipped counts records dropped as duplicates or for missing identifiers.
	Skipped int `json:"skipped"`

	// DefaultedCredits counts courses whose credit hours were absent.
	DefaultedCredits int `json:"defaulted_credits"`

	// DroppedPrereqs counts malformed prerequisite trees replaced by nil.
	DroppedPrereqs int `json:"dropped_prereqs"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	DryRun    bool      `json:"dry_run"`
}

// Duration returns how long the import took.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Files names the corpus inputs. Only Courses is required.
type Files struct {
	Courses  string
	Pathways string
	Tagged   string
}
