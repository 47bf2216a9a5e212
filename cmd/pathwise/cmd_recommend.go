// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pathwise/internal/logging"
	"github.com/tomtom215/pathwise/internal/models"
	"github.com/tomtom215/pathwise/internal/recommend"
)

type recommendFlags struct {
	semester         string
	completed        []string
	credits          int
	maxDifficulty    float64
	instructors      []string
	avoidGenEds      bool
	recommendedFirst bool
}

func newRecommendCmd(a *app) *cobra.Command {
	var flags recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend <pathway-id>",
		Short: "Recommend a semester of courses for a pathway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engineCfg := &recommend.Config{
				DefaultCredits:       a.cfg.Recommend.DefaultCredits,
				DefaultMaxDifficulty: a.cfg.Recommend.DefaultMaxDifficulty,
				LookupConcurrency:    a.cfg.Recommend.LookupConcurrency,
				CheckPrerequisites:   a.cfg.Recommend.CheckPrerequisites,
			}
			req, err := flags.request(cmd, args[0], engineCfg)
			if err != nil {
				return err
			}

			s, err := a.openStores(false)
			if err != nil {
				return err
			}
			defer s.Close()

			engine, err := recommend.NewEngine(engineCfg, s.db, s.db, logging.WithComponent("recommend"))
			if err != nil {
				return err
			}
			resp, err := engine.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.semester, "semester", "", "Semester to plan: spring, summer or fall (required)")
	f.StringSliceVar(&flags.completed, "completed", nil, "Comma-separated completed course ids")
	f.IntVar(&flags.credits, "credits", 0, "Credit budget (default from config)")
	f.Float64Var(&flags.maxDifficulty, "max-difficulty", 0, "Reject courses harder than this (0-5, default from config)")
	f.StringArrayVar(&flags.instructors, "instructor", nil, "Preferred instructor, repeat in order of preference")
	f.BoolVar(&flags.avoidGenEds, "avoid-gen-eds", false, "Skip general education courses")
	f.BoolVar(&flags.recommendedFirst, "recommended-first", false, "Fill from recommended courses before core courses")
	_ = cmd.MarkFlagRequired("semester")
	return cmd
}

// request validates the flags and builds an engine request. Preferences
// start from the engine defaults; only flags the user set override them.
func (f *recommendFlags) request(cmd *cobra.Command, pathwayID string, engineCfg *recommend.Config) (recommend.Request, error) {
	sem, ok := models.ParseSemester(f.semester)
	if !ok {
		return recommend.Request{}, fmt.Errorf("invalid semester %q: want spring, summer or fall", f.semester)
	}
	if f.credits < 0 || f.credits > 30 {
		return recommend.Request{}, errors.New("--credits must be between 0 (config default) and 30")
	}

	prefs := engineCfg.DefaultPreferences()
	if cmd.Flags().Changed("max-difficulty") {
		if f.maxDifficulty < 0 || f.maxDifficulty > 5 {
			return recommend.Request{}, errors.New("--max-difficulty must be between 0 and 5")
		}
		prefs.MaxDifficulty = f.maxDifficulty
	}
	prefs.PreferredInstructors = f.instructors
	prefs.AvoidGenEds = f.avoidGenEds
	prefs.PrioritizePathway = !f.recommendedFirst

	completed := make([]string, 0, len(f.completed))
	for _, id := range f.completed {
		if id = strings.TrimSpace(id); id != "" {
			completed = append(completed, id)
		}
	}

	return recommend.Request{
		RequestID:        logging.GenerateRequestID(),
		PathwayID:        strings.TrimSpace(pathwayID),
		CompletedCourses: completed,
		Semester:         sem,
		CreditBudget:     f.credits,
		Preferences:      prefs,
	}, nil
}
