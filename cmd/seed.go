package cmd

import (
	"fmt"

	"book-catalog/internal/data/repository"
	"book-catalog/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load books from a JSON file into an empty catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		config, logger, err := loadRuntime(false)
		if err != nil {
			return err
		}
		defer logger.Sync()

		path := config.Seed.Path
		if seedFile != "" {
			path = seedFile
		}

		db, err := connectDB(ctx, config, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if config.App.MigrateOnStart {
			if err := migrateUp(ctx, db, logger); err != nil {
				return err
			}
		}

		seeder := usecase.NewSeedService(repository.NewBookRepository(db, logger), logger)
		inserted, err := seeder.SeedBooks(ctx, path)
		if err != nil {
			return err
		}

		logger.Info("Seed finished", zap.String("path", path), zap.Int("inserted", inserted))
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d books\n", inserted)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (defaults to SEED_PATH)")
}
