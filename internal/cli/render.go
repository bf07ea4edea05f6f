package cli

import (
	"fmt"
	"strings"

	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/model"
)

// RenderResult formats one verification result for the terminal.
func RenderResult(r engine.Result) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Document: %s", r.Document.Kind)))
	b.WriteString("\n")

	doc := r.EffectiveDocument()
	rows := []struct {
		label string
		value string
	}{
		{"Account holder", doc.HolderName},
		{"Bank", doc.BankName},
		{"Account number", doc.AccountNumber},
		{"IFSC", doc.IFSCCode},
		{"MICR", doc.MICRCode},
		{"Cheque number", doc.ChequeNumber},
		{"UMRN", doc.MandateRef},
		{"Date", doc.Date},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-16s %s\n", row.label+":", row.value))
	}

	b.WriteString("\n")
	b.WriteString(renderValidation(r.Validation))
	b.WriteString("\n")
	b.WriteString(RenderDecision(r.Decision))
	return b.String()
}

func renderValidation(v model.ValidationResult) string {
	var b strings.Builder
	if v.IsValid {
		b.WriteString(SuccessStyle.Render("✓ validation passed"))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ validation failed (%d errors)", len(v.Errors))))
	}
	b.WriteString("\n")
	for _, f := range v.Errors {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("  error   %-18s %s", f.Field, f.Message)))
		b.WriteString("\n")
		if f.SuggestedFix != "" {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("          %s", f.SuggestedFix)))
			b.WriteString("\n")
		}
	}
	for _, f := range v.Warnings {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  warning %-18s %s", f.Field, f.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDecision formats a review decision with an appropriate color.
func RenderDecision(d model.ReviewDecision) string {
	line := fmt.Sprintf("%s (risk %.0f): %s", d.Recommendation, d.RiskScore, d.Reason)
	switch d.Recommendation {
	case model.AutoAccept:
		return SuccessStyle.Render(line)
	case model.AutoReject:
		return ErrorStyle.Render(line)
	default:
		return WarningStyle.Render(line)
	}
}

// RenderComparison formats a cross-document comparison.
func RenderComparison(c model.CrossDocumentComparison) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Cross-document check"))
	b.WriteString("\n")

	for _, m := range c.Matches {
		var mark string
		switch m.Outcome {
		case model.OutcomeMatch:
			mark = SuccessStyle.Render("✓")
		case model.OutcomeMismatch:
			mark = ErrorStyle.Render("✗")
		default:
			mark = SubtleStyle.Render("?")
		}
		b.WriteString(fmt.Sprintf("  %s %-18s similarity %.2f\n", mark, m.Field, m.Similarity))
	}

	for _, conflict := range c.Conflicts {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("  [%s] %s: %s", conflict.Severity, conflict.Field, conflict.Description)))
		b.WriteString("\n")
	}

	if c.Passed {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("passed (score %.2f)", c.OverallScore)))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("failed (score %.2f)", c.OverallScore)))
	}
	b.WriteString("\n")
	return b.String()
}
