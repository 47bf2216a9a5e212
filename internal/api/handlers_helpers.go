// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pathwise/internal/validation"
)

// maxBodyBytes bounds request bodies. A recommendation request is a short
// list of course ids.
const maxBodyBytes = 64 << 10

// sanitizeLogValue replaces control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// paramError describes a query parameter that could not be parsed.
type paramError struct {
	field string
	value string
	want  string
}

func (e *paramError) message() string {
	return fmt.Sprintf("%s must be %s", e.field, e.want)
}

func (e *paramError) details() map[string]interface{} {
	return map[string]interface{}{"field": e.field, "value": e.value}
}

// queryParser reads typed query parameters. It keeps the first parse
// failure so handlers check once after reading every parameter.
type queryParser struct {
	values url.Values
	err    *paramError
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (p *queryParser) fail(key, raw, want string) {
	if p.err == nil {
		p.err = &paramError{field: key, value: raw, want: want}
	}
}

func (p *queryParser) str(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

func (p *queryParser) strDefault(key, def string) string {
	if v := p.str(key); v != "" {
		return v
	}
	return def
}

func (p *queryParser) list(key string) []string {
	return parseCommaSeparated(p.values.Get(key))
}

func (p *queryParser) intDefault(key string, def int) int {
	raw := p.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, "an integer")
		return def
	}
	return v
}

func (p *queryParser) intPtr(key string) *int {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, "an integer")
		return nil
	}
	return &v
}

func (p *queryParser) floatPtr(key string) *float64 {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, "a number")
		return nil
	}
	return &v
}

func (p *queryParser) boolPtr(key string) *bool {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, "true or false")
		return nil
	}
	return &v
}

func (p *queryParser) boolDefault(key string, def bool) bool {
	if v := p.boolPtr(key); v != nil {
		return *v
	}
	return def
}

// respondParamError writes the parse failure, if any, and reports whether
// the handler should stop.
func (p *queryParser) respondParamError(w http.ResponseWriter, r *http.Request) bool {
	if p.err == nil {
		return false
	}
	NewResponseWriter(w, r).ValidationError(p.err.message(), p.err.details())
	return true
}

// validateRequest runs the shared validator and writes a VALIDATION_ERROR
// response on failure. It reports whether the handler should stop.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return false
	}
	apiErr := verr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
	return true
}

// checkLimit rejects page sizes above max.
func checkLimit(w http.ResponseWriter, r *http.Request, limit, maxLimit int) bool {
	if limit <= maxLimit {
		return false
	}
	NewResponseWriter(w, r).ValidationError(
		fmt.Sprintf("limit must be at most %d", maxLimit),
		map[string]interface{}{"field": "limit", "value": limit},
	)
	return true
}

// decodeJSONBody decodes a bounded JSON request body into v.
func decodeJSONBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return io.EOF
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
