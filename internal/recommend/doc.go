// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package recommend selects a next-semester course load for a career pathway.
//
// # Selection
//
// A pathway owns three ordered course lists: core, recommended and optional.
// Completed courses are removed from each list and the remaining candidates
// are visited bucket by bucket:
//
//	prioritize_pathway=true:  core (high) -> recommended (medium) -> optional (low)
//	prioritize_pathway=false: recommended (high) -> core (medium) -> optional (low)
//
// Each candidate is accepted greedily, in declaration order, unless its
// difficulty is above the ceiling, it is a gen-ed course while gen-eds are
// avoided, it is not offered in the target semester, or its credits would
// exceed the budget. Unknown course IDs are skipped. Selection ends once the
// budget is reached.
//
// # Prerequisites
//
// Response.PrerequisitesSatisfied is always true unless
// Config.CheckPrerequisites is enabled, in which case every selected course's
// prerequisite tree is evaluated against the completed set.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, store, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    PathwayID:    "data-engineer",
//	    Semester:     models.SemesterFall,
//	    CreditBudget: 15,
//	    Preferences:  engine.Config().DefaultPreferences(),
//	})
//	if errors.Is(err, recommend.ErrPathwayNotFound) {
//	    // 404
//	}
//
// # Thread Safety
//
// The engine keeps no mutable state. Course lookups within a bucket may run
// concurrently (Config.LookupConcurrency) but results and lookup errors are
// always consumed in declaration order, so the outcome matches a sequential
// pass.
package recommend
