package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/decision"
	"github.com/docsentry/docsentry/internal/server"
	"github.com/docsentry/docsentry/internal/validate"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation and scoring HTTP API",
		Long: `Start an HTTP server exposing field validation, cross-document
comparison, and review-decision scoring over JSON. No model provider is
needed; the API operates on already-extracted documents.

Examples:
  docsentry serve
  docsentry serve --addr :9090 --no-store`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Bool("no-store", false, "serve without the audit store (disables record lookup)")

	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.no_store", cmd.Flags().Lookup("no-store"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	var records server.RecordFetcher
	if !viper.GetBool("server.no_store") {
		db, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		records = db
	}

	srv := server.New(validate.NewValidator(validate.DefaultRules()), decision.NewScorer(), records, logger)
	return srv.ListenAndServe(ctx, viper.GetString("server.addr"))
}
