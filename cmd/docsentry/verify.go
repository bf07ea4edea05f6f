package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/model"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <image>",
		Short: "Verify one document image",
		Long: `Send a document image to the hosted model, validate the extracted fields
against Indian banking format rules, and score the document for review.

Examples:
  docsentry verify cheque.jpg
  docsentry verify --kind mandate mandate.png
  docsentry verify --save --json cheque.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: runVerify,
	}

	cmd.Flags().StringP("kind", "k", "", "expected document kind (cheque, mandate)")
	cmd.Flags().Bool("save", false, "persist the result to the audit store")
	cmd.Flags().Bool("json", false, "print raw JSON instead of styled output")

	_ = viper.BindPFlag("verify.kind", cmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("verify.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("verify.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	kind, err := parseKindFlag(viper.GetString("verify.kind"))
	if err != nil {
		return err
	}

	verifier, extractor, err := newVerifier(logger)
	if err != nil {
		return err
	}
	defer func() { _ = extractor.Close() }()

	result, err := verifier.VerifyFile(ctx, args[0], kind)
	if err != nil {
		return err
	}

	if viper.GetBool("verify.save") {
		db, dbErr := openStorage()
		if dbErr != nil {
			return dbErr
		}
		defer func() { _ = db.Close() }()
		if migErr := db.Migrate(ctx); migErr != nil {
			return fmt.Errorf("failed to run migrations: %w", migErr)
		}

		record := model.NewVerificationRecord(result.Document, result.Validation, result.Decision)
		record.SourcePath = args[0]
		record.Provider, record.ModelName = providerLabel()
		if saveErr := db.SaveVerification(ctx, record); saveErr != nil {
			return saveErr
		}
		logger.Info("verification saved", "id", record.ID)
	}

	if viper.GetBool("verify.json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Println(cli.RenderResult(result))
	return nil
}

func parseKindFlag(raw string) (model.DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return model.KindUnknown, nil
	case "cheque", "check":
		return model.KindCheque, nil
	case "mandate", "enach", "e-nach":
		return model.KindMandate, nil
	default:
		return model.KindUnknown, fmt.Errorf("unknown document kind: %s (use cheque or mandate)", raw)
	}
}
