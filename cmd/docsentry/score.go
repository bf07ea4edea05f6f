package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/cli"
	"github.com/docsentry/docsentry/internal/decision"
	"github.com/docsentry/docsentry/internal/model"
	"github.com/docsentry/docsentry/internal/validate"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [extracted.json]",
		Short: "Validate and score an already-extracted document",
		Long: `Run the validator and scorer over a document that has already been
extracted, without any network call. Reads JSON from the given file or
from stdin when no file is provided.

Example:
  docsentry verify --json cheque.jpg | jq .document | docsentry score`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScore,
	}

	cmd.Flags().Bool("json", false, "print raw JSON instead of styled output")
	_ = viper.BindPFlag("score.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runScore(_ *cobra.Command, args []string) error {
	var reader io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0]) // #nosec G304 -- user-supplied path
		if err != nil {
			return fmt.Errorf("failed to open document file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	var doc model.ExtractedDocument
	if err := json.NewDecoder(reader).Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse document JSON: %w", err)
	}

	validator := validate.NewValidator(validate.DefaultRules())
	scorer := decision.NewScorer()

	validation := validator.Validate(doc)
	reviewDecision := scorer.Decide(doc)

	if viper.GetBool("score.json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Validation model.ValidationResult `json:"validation"`
			Decision   model.ReviewDecision   `json:"decision"`
		}{validation, reviewDecision})
	}

	fmt.Println(cli.RenderDecision(reviewDecision))
	for _, f := range validation.Errors {
		fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("error   %-18s %s", f.Field, f.Message)))
	}
	for _, f := range validation.Warnings {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("warning %-18s %s", f.Field, f.Message)))
	}
	return nil
}
