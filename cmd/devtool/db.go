package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
)

func dbCmd() *cobra.Command {
	d := &cobra.Command{Use: "db", Short: "Create or reset the application database"}
	d.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create the database if it does not exist",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withServerConn(cmd.Context(), func(conn *pgx.Conn, name string) error {
					var exists bool
					if err := conn.QueryRow(cmd.Context(),
						"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
						return fmt.Errorf("failed to check if database exists: %w", err)
					}
					if exists {
						PrintInfo("Database %s already exists", name)
						return nil
					}
					if _, err := conn.Exec(cmd.Context(), "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
						return fmt.Errorf("failed to create database: %w", err)
					}
					PrintSuccess("Database %s created", name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Drop and recreate the database (destroys all data)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withServerConn(cmd.Context(), func(conn *pgx.Conn, name string) error {
					PrintInfo("Terminating connections to %s...", name)
					if _, err := conn.Exec(cmd.Context(), `
						SELECT pg_terminate_backend(pid)
						FROM pg_stat_activity
						WHERE datname = $1 AND pid <> pg_backend_pid()`, name); err != nil {
						PrintWarning("Failed to terminate connections: %v", err)
					}

					ident := pgx.Identifier{name}.Sanitize()
					if _, err := conn.Exec(cmd.Context(), "DROP DATABASE IF EXISTS "+ident); err != nil {
						return fmt.Errorf("failed to drop database: %w", err)
					}
					if _, err := conn.Exec(cmd.Context(), "CREATE DATABASE "+ident); err != nil {
						return fmt.Errorf("failed to create database: %w", err)
					}
					PrintSuccess("Database %s reset. Next step: devtool migrate up", name)
					return nil
				})
			},
		},
	)
	return d
}

// withServerConn connects to the maintenance database of the configured server
func withServerConn(ctx context.Context, fn func(conn *pgx.Conn, dbName string) error) error {
	dbName := envOr("DB_NAME", config.DefaultDBName)
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
	)

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	return fn(conn, dbName)
}
