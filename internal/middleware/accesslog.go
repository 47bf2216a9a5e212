// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/pathwise/internal/logging"
)

// AccessLog logs one line per request through the context logger. Requests
// slower than slowThreshold are logged at warn, 5xx at error, the rest at
// info. A zero threshold disables the slow request warning.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Info()
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case slowThreshold > 0 && elapsed > slowThreshold:
				event = logger.Warn().Dur("threshold", slowThreshold)
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", rec.statusCode).
				Int("bytes", rec.bytes).
				Dur("duration", elapsed).
				Msg("http request")
		})
	}
}
