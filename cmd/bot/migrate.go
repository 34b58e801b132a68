package main

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/counseling_portal/internal/app"
	"github.com/Freeeeeet/counseling_portal/internal/config"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the bot's database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				return m.Run(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				return m.Status(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *app.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Schema version: %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *app.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := app.NewPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, app.MigrationsFS(cfg.MigrationsPath), logger)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return fn(ctx, migrator)
}
