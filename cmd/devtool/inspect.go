package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/database/postgres"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
)

func levelsCmd() *cobra.Command {
	var xp int64
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the level table, or resolve a single XP total with --xp",
		RunE: func(cmd *cobra.Command, args []string) error {
			levels := gamification.DefaultLevelTable()

			if cmd.Flags().Changed("xp") {
				info, err := levels.Resolve(xp)
				if err != nil {
					return err
				}
				PrintInfo("%d XP is level %d (%s), %.1f%% to next", xp, info.Level, info.Title, info.ProgressPercentage)
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Level", "Min XP", "Title"})
			for _, t := range levels.Thresholds() {
				tw.AppendRow(table.Row{t.Level, t.MinXP, t.Title})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().Int64Var(&xp, "xp", 0, "resolve this XP total")
	return cmd
}

func badgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Print the badge catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Name", "Category", "Metric", "Threshold"})
			for _, r := range gamification.DefaultBadgeRules() {
				tw.AppendRow(table.Row{r.ID, r.Name, r.Category, r.Criteria.Metric, r.Criteria.Threshold})
			}
			tw.Render()
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the quest and tutorial YAML and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := catalog.NewLoader(dir)
			if err := loader.Load(); err != nil {
				return fmt.Errorf("catalog invalid: %w", err)
			}
			cat, err := loader.Catalog()
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Quest", "Category", "Difficulty", "Tasks", "XP"})
			for _, q := range cat.Quests() {
				tw.AppendRow(table.Row{q.ID, q.Category, q.Difficulty, len(q.Tasks), q.TotalXP()})
			}
			tw.Render()

			titles := make([]string, 0, len(cat.Tutorials()))
			for _, t := range cat.Tutorials() {
				titles = append(titles, t.ID)
			}
			PrintSuccess("%d quests, %d tasks, %d tutorials (%s)", len(cat.Quests()), cat.TaskCount(), len(titles), strings.Join(titles, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", envOr("CATALOG_DIR", config.DefaultCatalogDir), "catalog directory")
	return cmd
}

func leaderboardCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top of the XP leaderboard straight from the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := openPool(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer pool.Close()

			entries, err := postgres.NewLeaderboardRepository(pool).TopByXP(cmd.Context(), limit, 0)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"#", "Username", "XP", "Level", "Streak", "Badges"})
			for i, e := range entries {
				tw.AppendRow(table.Row{i + 1, e.Username, e.TotalXP, e.Level, e.CurrentStreak, e.BadgeCount})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of rows")
	return cmd
}
