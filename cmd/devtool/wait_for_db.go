package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/database"
)

func waitForDBCmd() *cobra.Command {
	var (
		retries  int
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "wait-for-db",
		Short: "Wait for the database to accept connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			PrintHeader("Waiting for database...")
			connString := connStringFromEnv()

			var lastErr error
			for i := 0; i < retries; i++ {
				pool, err := database.NewPool(cmd.Context(), connString, database.PoolConfig{MaxConns: 1})
				if err == nil {
					pool.Close()
					PrintSuccess("Database is ready")
					return nil
				}
				lastErr = err
				fmt.Printf("Database not ready (%d/%d): %v\n", i+1, retries, err)
				time.Sleep(interval)
			}
			return fmt.Errorf("database failed to become ready after %d attempts: %w", retries, lastErr)
		},
	}
	cmd.Flags().IntVar(&retries, "retries", 30, "number of attempts")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "delay between attempts")
	return cmd
}

// connStringFromEnv honours DB_URL, then the DB_* variables the server reads
func connStringFromEnv() string {
	if url := envOr("DB_URL", ""); url != "" {
		return url
	}
	cfg := &config.Config{
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBName:     envOr("DB_NAME", config.DefaultDBName),
	}
	return cfg.GetDBConnString()
}

// openPool connects with a small pool for one-shot commands
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	return database.NewPool(ctx, connStringFromEnv(), database.PoolConfig{MaxConns: 2})
}
