package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/model"
)

func crossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cross <cheque-image> <mandate-image>",
		Short: "Verify a cheque against an e-NACH mandate",
		Long: `Verify both documents and cross-check the shared fields (account holder,
account number, IFSC, bank name) for consistency.

Example:
  docsentry cross cheque.jpg mandate.jpg --save`,
		Args: cobra.ExactArgs(2),
		RunE: runCross,
	}

	cmd.Flags().Bool("save", false, "persist both results and the comparison to the audit store")
	cmd.Flags().Bool("json", false, "print raw JSON instead of styled output")

	_ = viper.BindPFlag("cross.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("cross.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runCross(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	verifier, extractor, err := newVerifier(logger)
	if err != nil {
		return err
	}
	defer func() { _ = extractor.Close() }()

	chequeData, err := os.ReadFile(args[0]) // #nosec G304 -- user-supplied image path
	if err != nil {
		return fmt.Errorf("failed to read cheque image: %w", err)
	}
	mandateData, err := os.ReadFile(args[1]) // #nosec G304 -- user-supplied image path
	if err != nil {
		return fmt.Errorf("failed to read mandate image: %w", err)
	}

	pair, err := verifier.VerifyPair(ctx,
		extract.ImageRequest{Data: chequeData, Kind: model.KindCheque},
		extract.ImageRequest{Data: mandateData, Kind: model.KindMandate},
	)
	if err != nil {
		return err
	}
	pair.Cheque.SourcePath = args[0]
	pair.Mandate.SourcePath = args[1]

	if viper.GetBool("cross.save") {
		if err := saveCross(cmd, pair); err != nil {
			return err
		}
	}

	if viper.GetBool("cross.json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(pair)
	}

	fmt.Println(cli.RenderResult(pair.Cheque))
	fmt.Println(cli.RenderResult(pair.Mandate))
	fmt.Println(cli.RenderComparison(pair.Comparison))
	return nil
}

func saveCross(cmd *cobra.Command, pair engine.PairResult) error {
	ctx := cmd.Context()

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	provider, modelName := providerLabel()

	chequeRecord := model.NewVerificationRecord(pair.Cheque.Document, pair.Cheque.Validation, pair.Cheque.Decision)
	chequeRecord.SourcePath = pair.Cheque.SourcePath
	chequeRecord.Provider, chequeRecord.ModelName = provider, modelName

	mandateRecord := model.NewVerificationRecord(pair.Mandate.Document, pair.Mandate.Validation, pair.Mandate.Decision)
	mandateRecord.SourcePath = pair.Mandate.SourcePath
	mandateRecord.Provider, mandateRecord.ModelName = provider, modelName

	if err := db.SaveVerification(ctx, chequeRecord); err != nil {
		return err
	}
	if err := db.SaveVerification(ctx, mandateRecord); err != nil {
		return err
	}
	if err := db.SaveCrossCheck(ctx, chequeRecord.ID, mandateRecord.ID, pair.Comparison); err != nil {
		return err
	}

	slog.Info("cross-check saved", "cheque_id", chequeRecord.ID, "mandate_id", mandateRecord.ID)
	return nil
}
