// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package recommend

import (
	"fmt"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultCredits is the credit budget used when a request leaves it at zero.
	// Default: 15.
	DefaultCredits int `json:"default_credits"`

	// DefaultMaxDifficulty is the ceiling used by DefaultPreferences.
	// Default: 5.0 (the full rating scale).
	DefaultMaxDifficulty float64 `json:"default_max_difficulty"`

	// LookupConcurrency bounds parallel course lookups within a bucket.
	// 1 resolves candidates strictly one at a time.
	// Default: 4.
	LookupConcurrency int `json:"lookup_concurrency"`

	// CheckPrerequisites evaluates prerequisite trees of selected courses
	// against the completed set and reports the result in
	// Response.PrerequisitesSatisfied. Selection itself is unchanged.
	// Default: false (the flag is always true).
	CheckPrerequisites bool `json:"check_prerequisites"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultCredits:       15,
		DefaultMaxDifficulty: 5.0,
		LookupConcurrency:    4,
		CheckPrerequisites:   false,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultCredits < 1 {
		return fmt.Errorf("default_credits must be positive, got %d", c.DefaultCredits)
	}
	if c.DefaultMaxDifficulty < 0 || c.DefaultMaxDifficulty > 5 {
		return fmt.Errorf("default_max_difficulty must be in [0, 5], got %f", c.DefaultMaxDifficulty)
	}
	if c.LookupConcurrency < 1 {
		return fmt.Errorf("lookup_concurrency must be positive, got %d", c.LookupConcurrency)
	}
	return nil
}

// DefaultPreferences returns the preferences applied when a caller states none.
func (c *Config) DefaultPreferences() Preferences {
	return Preferences{
		MaxDifficulty:     c.DefaultMaxDifficulty,
		AvoidGenEds:       false,
		PrioritizePathway: true,
	}
}
