package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/deskboard/internal/config"
	"github.com/templui/deskboard/internal/db"
)

type migrateFunc func(ctx context.Context, database *sqlx.DB, driver string) error

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, database *sqlx.DB, driver string) error {
				err := db.RunMigrations(ctx, database.DB, driver)
				if err != nil {
					return err
				}
				return printVersion(ctx, database, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, database *sqlx.DB, driver string) error {
				err := db.MigrateDown(ctx, database.DB, driver)
				if err != nil {
					return err
				}
				return printVersion(ctx, database, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied and latest schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), printVersion)
		},
	})

	return cmd
}

func withDB(ctx context.Context, fn migrateFunc) error {
	cfg := config.Load()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	return fn(ctx, database, cfg.DBDriver)
}

func printVersion(ctx context.Context, database *sqlx.DB, driver string) error {
	version, err := db.Version(ctx, database.DB, driver)
	if err != nil {
		return err
	}
	latest, err := db.Latest()
	if err != nil {
		return err
	}

	fmt.Printf("schema version: %d (latest %d)\n", version, latest)
	if version < latest {
		fmt.Printf("%d migration(s) pending, run: do migrate up\n", latest-version)
	}
	return nil
}
