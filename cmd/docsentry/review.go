package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/model"
	"github.com/docsentry/docsentry/internal/storage"
	"github.com/docsentry/docsentry/internal/tui"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively accept or reject pending verifications",
		Long: `Open an interactive table of verifications awaiting manual review.
Press 'a' to accept the selected record, 'r' to reject it, and 'q' to quit.

Examples:
  docsentry review
  docsentry review --limit 100`,
		Args: cobra.NoArgs,
		RunE: runReview,
	}

	cmd.Flags().IntP("limit", "n", 50, "maximum pending records to load")
	_ = viper.BindPFlag("review.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	records, err := db.ListVerifications(ctx, storage.ListFilter{
		Status: model.ReviewPending,
		Limit:  viper.GetInt("review.limit"),
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(cli.SuccessStyle.Render("No verifications awaiting review."))
		return nil
	}

	return tui.Run(ctx, db, records)
}
