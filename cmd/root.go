package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd runs the API server when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "book-catalog",
	Short: "book-catalog - book listing and review service",
	Long: `book-catalog serves an authenticated HTTP API for listing books with their
average ratings and posting one review per user per book.

Configuration is read from an env file (see --env) and the process environment.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute is called by main.main(). SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "env file with configuration (missing file is ignored)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, hashPasswordCmd)
}
