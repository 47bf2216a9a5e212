// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

/*
Package services provides suture.Service wrappers for Pathwise components.

Each wrapper turns a component lifecycle into suture's context-aware
Serve(ctx) error and names itself through fmt.Stringer for the event log.

HTTPServerService runs an *http.Server and shuts it down gracefully when
the context is canceled.

TagIndexGCService periodically reclaims Badger value log space in the
skill tag index.

CacheSweepService drops expired entries from the course lookup cache.
*/
package services
