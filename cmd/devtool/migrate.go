package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rishav-026/Gamified-Coding-platform/internal/database"
)

func migrateCmd() *cobra.Command {
	m := &cobra.Command{Use: "migrate", Short: "Manage database migrations"}
	m.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(mg *database.Migrator) error {
					if err := mg.Up(cmd.Context()); err != nil {
						return err
					}
					PrintSuccess("Migrations applied")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(mg *database.Migrator) error {
					if err := mg.Down(cmd.Context()); err != nil {
						return err
					}
					v, err := mg.Version(cmd.Context())
					if err != nil {
						return err
					}
					PrintSuccess("Rolled back, schema version is now %d", v)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(mg *database.Migrator) error {
					statuses, err := mg.Status(cmd.Context())
					if err != nil {
						return err
					}
					tw := table.NewWriter()
					tw.SetOutputMirror(os.Stdout)
					tw.AppendHeader(table.Row{"Version", "Source", "Applied"})
					for _, s := range statuses {
						tw.AppendRow(table.Row{s.Version, s.Source, s.Applied})
					}
					tw.Render()
					return nil
				})
			},
		},
	)
	return m
}

func withMigrator(cmd *cobra.Command, fn func(*database.Migrator) error) error {
	pool, err := openPool(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	mg := database.NewMigrator(pool)
	defer mg.Close()
	return fn(mg)
}
