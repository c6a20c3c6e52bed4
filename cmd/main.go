package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/stackadvisor-backend/internal/app"
)

// rootCmd serves the API when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "stackadvisor",
	Short:         "Tech stack recommendation API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Migrate()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the built-in technology catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Seed(cmd.Context())
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stackadvisor: %v\n", err)
		stop()
		os.Exit(1)
	}
}
