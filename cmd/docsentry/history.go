package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/model"
	"github.com/docsentry/docsentry/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past verification results",
		Long: `List verification records from the audit store, newest first, with a
per-recommendation count summary.

Examples:
  docsentry history
  docsentry history --kind cheque --recommendation AUTO_REJECT
  docsentry history --status PENDING --limit 10`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().StringP("kind", "k", "", "filter by document kind (cheque, mandate)")
	cmd.Flags().StringP("recommendation", "r", "", "filter by recommendation (e.g. AUTO_REJECT)")
	cmd.Flags().StringP("status", "s", "", "filter by review status (e.g. PENDING)")
	cmd.Flags().IntP("limit", "n", 20, "maximum records to show")

	_ = viper.BindPFlag("history.kind", cmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("history.recommendation", cmd.Flags().Lookup("recommendation"))
	_ = viper.BindPFlag("history.status", cmd.Flags().Lookup("status"))
	_ = viper.BindPFlag("history.limit", cmd.Flags().Lookup("limit"))

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	kind, err := parseKindFlag(viper.GetString("history.kind"))
	if err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	filter := storage.ListFilter{
		Kind:           kind,
		Recommendation: model.Recommendation(strings.ToUpper(viper.GetString("history.recommendation"))),
		Status:         model.ReviewStatus(strings.ToUpper(viper.GetString("history.status"))),
		Limit:          viper.GetInt("history.limit"),
	}

	records, err := db.ListVerifications(ctx, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No verification records found."))
		return nil
	}

	for _, record := range records {
		fmt.Println(historyLine(record))
	}

	counts, err := db.CountByRecommendation(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"All time: %d accepted, %d recommended, %d required, %d rejected",
		counts[model.AutoAccept], counts[model.ReviewRecommended],
		counts[model.ReviewRequired], counts[model.AutoReject])))

	return nil
}

func historyLine(record model.VerificationRecord) string {
	rec := string(record.Decision.Recommendation)
	switch record.Decision.Recommendation {
	case model.AutoAccept:
		rec = cli.SuccessStyle.Render(rec)
	case model.AutoReject:
		rec = cli.ErrorStyle.Render(rec)
	default:
		rec = cli.WarningStyle.Render(rec)
	}

	holder := record.Document.HolderName
	if holder == "" {
		holder = "(unknown holder)"
	}

	return fmt.Sprintf("%s  %-13s %-8s %-20s risk %5.1f  %s",
		record.CreatedAt.Format("2006-01-02 15:04"),
		record.Kind, record.Status, rec,
		record.Decision.RiskScore, holder)
}
