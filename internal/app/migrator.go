package app

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/Freeeeeet/counseling_portal/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator wraps a goose provider over the bot's own tables
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	logger   *zap.Logger
}

// MigrationsFS prefers an on-disk migrations directory and falls back to the embedded set
func MigrationsFS(path string) fs.FS {
	if path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return os.DirFS(path)
		}
	}
	return migrations.FS
}

func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, logger *zap.Logger) (*Migrator, error) {
	// goose works on *sql.DB, so wrap the pool
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create goose provider: %w", err)
	}

	return &Migrator{
		db:       db,
		provider: provider,
		logger:   logger,
	}, nil
}

// Run applies all pending migrations
func (mg *Migrator) Run(ctx context.Context) error {
	mg.logger.Info("Applying database migrations")

	results, err := mg.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, r := range results {
		mg.logger.Info("Migration applied",
			zap.Int64("version", r.Source.Version),
			zap.String("path", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}

	mg.logger.Info("Migrations applied", zap.Int("count", len(results)))
	return nil
}

// Version returns the current schema version
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := mg.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Status logs every known migration with its state
func (mg *Migrator) Status(ctx context.Context) error {
	statuses, err := mg.provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
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
		mg.logger.Info("Migration", fields...)
	}
	return nil
}

// Close releases the sql.DB wrapper, the pool itself is owned by the caller
func (mg *Migrator) Close() error {
	if mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
