package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationFS returns the embedded SQL migrations rooted at the migrations directory.
func MigrationFS() (fs.FS, error) {
	return fs.Sub(embedMigrations, "migrations")
}

// Migrator applies the embedded schema migrations through goose.
type Migrator struct {
	provider *goose.Provider
	log      *zap.Logger
}

func NewMigrator(db *sql.DB, log *zap.Logger) (*Migrator, error) {
	fsys, err := MigrationFS()
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}

	return &Migrator{
		provider: provider,
		log:      log.With(zap.String("component", "migrator")),
	}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		m.log.Info("Migration applied",
			zap.Int64("version", res.Source.Version),
			zap.String("path", res.Source.Path),
			zap.Duration("duration", res.Duration),
		)
	}

	if len(results) == 0 {
		m.log.Info("Schema is up to date")
	}

	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	res, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}

	m.log.Info("Migration rolled back",
		zap.Int64("version", res.Source.Version),
		zap.String("path", res.Source.Path),
	)

	return nil
}

// Status logs the state of every known migration and returns the current schema version.
func (m *Migrator) Status(ctx context.Context) (int64, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration status: %w", err)
	}

	for _, st := range statuses {
		fields := []zap.Field{
			zap.Int64("version", st.Source.Version),
			zap.String("path", st.Source.Path),
			zap.String("state", string(st.State)),
		}
		if !st.AppliedAt.IsZero() {
			fields = append(fields, zap.Time("applied_at", st.AppliedAt))
		}
		m.log.Info("Migration", fields...)
	}

	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}

	return version, nil
}
