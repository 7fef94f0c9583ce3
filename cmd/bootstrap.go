package cmd

import (
	"context"
	"fmt"
	"log"

	"book-catalog/internal/data/repository"
	"book-catalog/pkg/database"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

// loadRuntime reads configuration and builds the logger shared by every command.
func loadRuntime(requireAuth bool) (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if requireAuth {
		if err := config.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production defaults.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

func connectDB(ctx context.Context, config *utils.Config, logger *zap.Logger) (*database.DB, error) {
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("host", config.Database.Host),
		zap.String("name", config.Database.Name))

	return db, nil
}

// migrateUp applies pending schema migrations through a database/sql view of the pool.
func migrateUp(ctx context.Context, db *database.DB, logger *zap.Logger) error {
	sqlDB := db.StdDB()
	defer sqlDB.Close()

	migrator, err := database.NewMigrator(sqlDB, logger)
	if err != nil {
		return err
	}
	return migrator.Up(ctx)
}

func buildRepository(db *database.DB, config *utils.Config, logger *zap.Logger) (*repository.Repository, error) {
	credentials, err := repository.ParseCredentials(config.Auth.Users)
	if err != nil {
		return nil, fmt.Errorf("parse AUTH_USERS: %w", err)
	}
	if config.Auth.Users == "" {
		logger.Warn("AUTH_USERS is empty, using development credentials")
	}

	credentialRepo, err := repository.NewCredentialRepository(credentials, logger)
	if err != nil {
		return nil, err
	}

	return repository.NewRepository(db, credentialRepo, logger), nil
}
