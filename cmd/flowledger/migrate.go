package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ehtishamkhalid92/flowledger/internal/cli"
	"github.com/ehtishamkhalid92/flowledger/internal/config"
	"github.com/ehtishamkhalid92/flowledger/internal/storage"
)

func migrateCmd() *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := storage.NewSQLiteStorage(config.DatabasePath())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if statusOnly {
				version, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Schema version: %d (expected %d)\n", version, storage.ExpectedSchemaVersion)
				return nil
			}

			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database schema at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "show current migration status without applying changes")

	return cmd
}
