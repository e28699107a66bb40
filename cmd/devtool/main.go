package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appName = "codequest"

var rootCmd = &cobra.Command{
	Use:           "devtool",
	Short:         "Developer tooling for the " + appName + " backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		checkDBCmd(),
		dbCmd(),
		waitForDBCmd(),
		migrateCmd(),
		levelsCmd(),
		badgesCmd(),
		catalogCmd(),
		leaderboardCmd(),
	)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
