package cmd

import (
	"context"
	"fmt"

	"book-catalog/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *database.Migrator, _ *zap.Logger) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *database.Migrator, _ *zap.Logger) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(ctx context.Context, m *database.Migrator, logger *zap.Logger) error {
				version, err := m.Status(ctx)
				if err != nil {
					return err
				}
				logger.Info("Current schema version", zap.Int64("version", version))
				return nil
			}),
		},
	)
}

func withMigrator(run func(ctx context.Context, m *database.Migrator, logger *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		config, logger, err := loadRuntime(false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := connectDB(ctx, config, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		sqlDB := db.StdDB()
		defer sqlDB.Close()

		migrator, err := database.NewMigrator(sqlDB, logger)
		if err != nil {
			return fmt.Errorf("init migrator: %w", err)
		}

		return run(ctx, migrator, logger)
	}
}
