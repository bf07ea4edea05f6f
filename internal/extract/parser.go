package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docsentry/docsentry/internal/model"
)

// cleanMarkdownWrapper strips code fences some models wrap around JSON
// despite being told not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

// ParseDocument decodes a model response into an ExtractedDocument and
// normalizes it: NOT_FOUND sentinels collapse to empty strings, the kind and
// prediction labels are canonicalized, and numeric self-reports are clamped
// into range.
func ParseDocument(content string, kindHint model.DocumentKind) (model.ExtractedDocument, error) {
	content = cleanMarkdownWrapper(content)
	if content == "" {
		return model.ExtractedDocument{}, fmt.Errorf("empty response")
	}

	var doc model.ExtractedDocument
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return model.ExtractedDocument{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	doc.Kind = canonicalKind(string(doc.Kind), kindHint)
	doc.Prediction = canonicalPrediction(string(doc.Prediction))

	doc.HolderName = normalizeField(doc.HolderName)
	doc.BankName = normalizeField(doc.BankName)
	doc.AccountNumber = normalizeField(doc.AccountNumber)
	doc.IFSCCode = normalizeField(doc.IFSCCode)
	doc.MICRCode = normalizeField(doc.MICRCode)
	doc.ChequeNumber = normalizeField(doc.ChequeNumber)
	doc.MandateRef = normalizeField(doc.MandateRef)
	doc.Frequency = normalizeField(doc.Frequency)
	doc.Date = normalizeField(doc.Date)
	doc.Amount = normalizeField(doc.Amount)

	if doc.Confidence < 0 {
		doc.Confidence = 0
	}
	if doc.Confidence > 1 {
		doc.Confidence = 1
	}
	if doc.TamperingScore < 0 {
		doc.TamperingScore = 0
	}
	if doc.TamperingScore > 100 {
		doc.TamperingScore = 100
	}

	indicators := doc.FraudIndicators[:0]
	for _, ind := range doc.FraudIndicators {
		if strings.TrimSpace(ind) != "" {
			indicators = append(indicators, strings.TrimSpace(ind))
		}
	}
	doc.FraudIndicators = indicators

	return doc, nil
}

// FallbackDocument is the safe substitute when the model's response cannot
// be parsed: confidence zero and an explanatory fraud indicator, so the
// scorer lands on AutoReject instead of the pipeline crashing.
func FallbackDocument(reason string) model.ExtractedDocument {
	return model.ExtractedDocument{
		Kind:            model.KindUnknown,
		Confidence:      0,
		FraudIndicators: []string{fmt.Sprintf("model response could not be parsed: %s", reason)},
	}
}

func normalizeField(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "NOT_FOUND") || strings.EqualFold(v, "N/A") || strings.EqualFold(v, "null") {
		return ""
	}
	return v
}

func canonicalKind(raw string, hint model.DocumentKind) model.DocumentKind {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CHEQUE", "CHECK", "BANK_CHEQUE":
		return model.KindCheque
	case "ENACH_MANDATE", "E-NACH", "ENACH", "NACH_MANDATE", "MANDATE":
		return model.KindMandate
	case "":
		// An absent label with a caller hint keeps the hint; an explicit
		// UNKNOWN from the model stands.
		if hint == model.KindCheque || hint == model.KindMandate {
			return hint
		}
		return model.KindUnknown
	default:
		return model.KindUnknown
	}
}

func canonicalPrediction(raw string) model.Prediction {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PASS":
		return model.PredictionPass
	case "FAIL", "REJECT":
		return model.PredictionFail
	case "FLAGGED", "FLAG", "REVIEW":
		return model.PredictionFlagged
	default:
		return ""
	}
}
