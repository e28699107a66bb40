package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const dockerReadyAttempts = 30

func checkDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Check the docker compose database and start it if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckDB()
		},
	}
}

func runCheckDB() error {
	PrintHeader("Checking Docker database status...")

	if err := runCommand("docker", "compose", "version"); err != nil {
		return fmt.Errorf("docker compose not found. Please install Docker Compose")
	}

	out, err := getCommandOutput("docker", "compose", "ps", "db")
	if err == nil {
		status := strings.ToLower(out)
		if strings.Contains(status, "up") || strings.Contains(status, "running") {
			PrintSuccess("Database is already running")
			return nil
		}
	}

	PrintInfo("Starting database...")
	if err := runCommandVerbose("docker", "compose", "up", "-d", "db"); err != nil {
		return fmt.Errorf("error starting database: %v", err)
	}

	dbUser := envOr("DB_USER", "postgres")
	dbName := envOr("DB_NAME", appName)

	for attempt := 0; attempt < dockerReadyAttempts; attempt++ {
		if err := runCommand("docker", "compose", "exec", "-T", "db", "pg_isready", "-U", dbUser, "-d", dbName); err == nil {
			PrintSuccess("Database is ready")
			return nil
		}
		fmt.Printf("Waiting for database... (%d/%d)\n", attempt+1, dockerReadyAttempts)
		time.Sleep(time.Second)
	}

	PrintError("Database failed to start after %d seconds", dockerReadyAttempts)
	_ = runCommandVerbose("docker", "compose", "logs", "db")
	return fmt.Errorf("database failed to start")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
