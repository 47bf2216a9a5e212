// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pathwise/internal/database"
	"github.com/tomtom215/pathwise/internal/models"
)

// searchResult mirrors the paginated API payload.
type searchResult struct {
	Courses    []models.Course   `json:"courses"`
	Pagination models.Pagination `json:"pagination"`
}

func newSearchCmd(a *app) *cobra.Command {
	var flags struct {
		skills []string
		page   int
		limit  int
	}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search courses by id, title or description",
		Long: "Matches course ids loosely (\"cs225\" finds \"CS 225\") and titles and\n" +
			"descriptions by case-insensitive substring. Courses tagged with any\n" +
			"--skills value are added to the result.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("search query is empty")
			}
			if flags.page < 1 || flags.limit < 1 || flags.limit > a.cfg.API.MaxPageSize {
				return errors.New("--page must be >= 1 and --limit between 1 and the configured maximum")
			}

			s, err := a.openStores(false)
			if err != nil {
				return err
			}
			defer s.Close()

			search := database.CourseSearch{Query: query}
			if len(flags.skills) > 0 && s.tags != nil {
				ids, err := s.tags.CoursesWithSkills(cmd.Context(), flags.skills)
				if err != nil {
					return err
				}
				search.AlsoIDs = ids
			}

			courses, total, err := s.db.SearchCourses(cmd.Context(), search, flags.page, flags.limit)
			if err != nil {
				return err
			}
			if courses == nil {
				courses = []models.Course{}
			}
			return writeJSON(cmd.OutOrStdout(), searchResult{
				Courses:    courses,
				Pagination: models.NewPagination(flags.page, flags.limit, total),
			})
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&flags.skills, "skills", nil, "Comma-separated skills to union into the result")
	f.IntVar(&flags.page, "page", 1, "Result page")
	f.IntVar(&flags.limit, "limit", 20, "Results per page")
	return cmd
}
