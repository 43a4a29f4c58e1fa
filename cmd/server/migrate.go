package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/post-engagement-api/internal/config"
	"github.com/post-engagement-api/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(_ *cobra.Command, _ []string) error {
				return withDB(func(db *database.DB, path string) error {
					return db.RunMigrations(path)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(_ *cobra.Command, _ []string) error {
				return withDB(func(db *database.DB, path string) error {
					return db.MigrateDown(path)
				})
			},
		},
		&cobra.Command{
			Use:   "to <version>",
			Short: "Migrate up or down to a specific version",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return withDB(func(db *database.DB, path string) error {
					return db.MigrateToVersion(path, uint(version))
				})
			},
		},
	)
	return cmd
}

// withDB opens the configured postgres database for a migration command
func withDB(fn func(db *database.DB, path string) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the postgres driver, configured driver is %q", cfg.Storage.Driver)
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db, cfg.Database.MigrationsPath)
}
