package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/model"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Verify every document image in a directory",
		Long: `Walk a directory of document images, verify each one concurrently, and
print a per-recommendation summary. Results are saved to the audit store
unless --no-save is given.

Examples:
  docsentry batch ./scans
  docsentry batch --workers 8 --kind cheque ./scans`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().IntP("workers", "w", 4, "number of concurrent verifications")
	cmd.Flags().StringP("kind", "k", "", "expected document kind (cheque, mandate)")
	cmd.Flags().Bool("no-save", false, "do not persist results to the audit store")

	_ = viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("batch.kind", cmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("batch.no_save", cmd.Flags().Lookup("no-save"))

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	kind, err := parseKindFlag(viper.GetString("batch.kind"))
	if err != nil {
		return err
	}

	paths, err := collectImages(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no document images found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout())
	defer cancel()

	verifier, extractor, err := newVerifier(logger)
	if err != nil {
		return err
	}
	defer func() { _ = extractor.Close() }()

	logger.Info("starting batch verification", "images", len(paths), "workers", viper.GetInt("batch.workers"))

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("verifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results := verifier.VerifyFiles(ctx, paths, kind, viper.GetInt("batch.workers"), func(engine.Result) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	if !viper.GetBool("batch.no_save") {
		if err := saveBatch(ctx, results); err != nil {
			return err
		}
	}

	printBatchSummary(results)
	return nil
}

func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp", ".heic":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func saveBatch(ctx context.Context, results []engine.Result) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	provider, modelName := providerLabel()
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		record := model.NewVerificationRecord(result.Document, result.Validation, result.Decision)
		record.SourcePath = result.SourcePath
		record.Provider, record.ModelName = provider, modelName
		if err := db.SaveVerification(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func printBatchSummary(results []engine.Result) {
	counts := make(map[model.Recommendation]int)
	var failures []engine.Result
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, r)
			continue
		}
		counts[r.Decision.Recommendation]++
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Batch complete: %d documents", len(results))))
	order := []model.Recommendation{model.AutoAccept, model.ReviewRecommended, model.ReviewRequired, model.AutoReject}
	for _, rec := range order {
		if counts[rec] == 0 {
			continue
		}
		line := fmt.Sprintf("  %-20s %d", rec, counts[rec])
		switch rec {
		case model.AutoAccept:
			fmt.Println(cli.SuccessStyle.Render(line))
		case model.AutoReject:
			fmt.Println(cli.ErrorStyle.Render(line))
		default:
			fmt.Println(cli.WarningStyle.Render(line))
		}
	}

	for _, f := range failures {
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("  failed: %s: %v", f.SourcePath, f.Err)))
	}
}
