package cmd

import (
	"book-catalog/internal/wire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	config, logger, err := loadRuntime(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := connectDB(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if config.App.MigrateOnStart {
		if err := migrateUp(ctx, db, logger); err != nil {
			logger.Error("Failed to migrate database", zap.Error(err))
			return err
		}
	}

	repos, err := buildRepository(db, config, logger)
	if err != nil {
		logger.Error("Failed to build repositories", zap.Error(err))
		return err
	}

	app := wire.Wiring(repos, db, config, logger)

	if config.Seed.OnStart {
		if _, err := app.Service.Seed.SeedBooks(ctx, config.Seed.Path); err != nil {
			logger.Error("Failed to seed catalog", zap.Error(err))
			return err
		}
	}

	return APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger)
}
