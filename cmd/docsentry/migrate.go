package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending audit store migrations",
		Long: `Bring the audit store schema up to the latest version. Migrations
also run automatically before any command that touches the store, so this
is mainly useful for provisioning and for checking the current version.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Audit store schema at version %d.", version)))
	if version != storage.ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d, expected %d", version, storage.ExpectedSchemaVersion)
	}
	return nil
}
