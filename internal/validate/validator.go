package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/docsentry/docsentry/internal/model"
)

// Validator checks one extracted document against the configured format
// rules. It is stateless apart from its rules and safe for concurrent use.
type Validator struct {
	rules Rules
}

// NewValidator creates a validator with the given rule set.
func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// Validate runs every field check and returns the accumulated findings.
// It never fails: malformed input degrades to error or warning findings,
// and the result's Corrected document is set only when a field changed.
func (v *Validator) Validate(doc model.ExtractedDocument) model.ValidationResult {
	var errs, warns []model.Finding
	corrected := doc.Clone()
	changed := false

	// Routing code first: its corrected value feeds the bank lookup below.
	fixed, ok := v.correctRoutingCode(doc.IFSCCode)
	switch {
	case !ok:
		errs = append(errs, model.Finding{
			Field:        "ifscCode",
			Kind:         model.FindingInvalidFormat,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("IFSC code %q does not match the required format", doc.IFSCCode),
			SuggestedFix: "expected 4 letters, a zero, then 6 alphanumerics (e.g. SBIN0001234)",
		})
	case fixed != doc.IFSCCode:
		corrected.IFSCCode = fixed
		changed = true
		warns = append(warns, model.Finding{
			Field:    "ifscCode",
			Kind:     model.FindingUnclearText,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("IFSC code %q corrected to %q for a common OCR misread", doc.IFSCCode, fixed),
		})
	}

	if (doc.Kind == model.KindCheque || model.FieldPresent(doc.MICRCode)) &&
		!v.rules.RoutingCheck.MatchString(strings.TrimSpace(doc.MICRCode)) {
		errs = append(errs, model.Finding{
			Field:        "micrCode",
			Kind:         model.FindingInvalidFormat,
			Severity:     model.SeverityError,
			Message:      fmt.Sprintf("MICR code %q is not a 9 digit value", doc.MICRCode),
			SuggestedFix: "expected exactly 9 digits from the cheque's MICR band",
		})
	}

	if !v.rules.AccountNumber.MatchString(strings.TrimSpace(doc.AccountNumber)) {
		warns = append(warns, model.Finding{
			Field:    "accountNumber",
			Kind:     model.FindingUnusualFormat,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("account number %q is outside the usual 9-18 digit range", doc.AccountNumber),
		})
	}

	if doc.Kind == model.KindCheque || model.FieldPresent(doc.ChequeNumber) {
		if !v.rules.ChequeNumber.MatchString(strings.TrimSpace(doc.ChequeNumber)) {
			warns = append(warns, model.Finding{
				Field:    "chequeNumber",
				Kind:     model.FindingUnusualFormat,
				Severity: model.SeverityWarning,
				Message:  fmt.Sprintf("cheque number %q is outside the usual 6-8 digit range", doc.ChequeNumber),
			})
		}
	}

	required := []struct {
		field string
		value string
	}{
		{"accountHolderName", doc.HolderName},
		{"bankName", doc.BankName},
	}
	for _, r := range required {
		if !model.FieldPresent(r.value) {
			errs = append(errs, model.Finding{
				Field:    r.field,
				Kind:     model.FindingMissingField,
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("%s could not be read from the document", r.field),
			})
		}
	}

	if doc.Confidence < v.rules.MinConfidence {
		warns = append(warns, model.Finding{
			Field:    "confidence",
			Kind:     model.FindingLowConfidence,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("extraction confidence %.2f is below the %.2f threshold", doc.Confidence, v.rules.MinConfidence),
		})
	}

	if finding, mismatch := v.checkBankPrefix(corrected.IFSCCode, doc.BankName); mismatch {
		warns = append(warns, finding)
	}

	if doc.Kind == model.KindMandate {
		warns = append(warns, v.validateMandateFields(doc)...)
	}

	result := model.ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
	if changed {
		result.Corrected = &corrected
	}
	return result
}

// checkBankPrefix cross-checks the printed bank name against the bank
// implied by the first four characters of the routing code.
func (v *Validator) checkBankPrefix(routingCode, bankName string) (model.Finding, bool) {
	if len(routingCode) < 4 || !model.FieldPresent(bankName) {
		return model.Finding{}, false
	}
	expected, known := v.rules.BankByPrefix[strings.ToUpper(routingCode[:4])]
	if !known {
		return model.Finding{}, false
	}
	got := strings.ToLower(strings.TrimSpace(bankName))
	want := strings.ToLower(expected)
	if strings.Contains(got, want) || strings.Contains(want, got) {
		return model.Finding{}, false
	}
	return model.Finding{
		Field:    "bankName",
		Kind:     model.FindingUnusualFormat,
		Severity: model.SeverityWarning,
		Message:  fmt.Sprintf("bank name %q does not match %q expected for IFSC prefix %s", bankName, expected, strings.ToUpper(routingCode[:4])),
	}, true
}

func (v *Validator) validateMandateFields(doc model.ExtractedDocument) []model.Finding {
	var warns []model.Finding

	if !v.rules.MandateRef.MatchString(strings.ToUpper(strings.TrimSpace(doc.MandateRef))) {
		warns = append(warns, model.Finding{
			Field:    "umrn",
			Kind:     model.FindingUnusualFormat,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("mandate reference %q is not a 15-25 character alphanumeric UMRN", doc.MandateRef),
		})
	}

	if model.FieldPresent(doc.Date) && !v.validDate(doc.Date) {
		warns = append(warns, model.Finding{
			Field:    "date",
			Kind:     model.FindingUnusualFormat,
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("date %q does not match any accepted format", doc.Date),
		})
	}

	return warns
}

func (v *Validator) validDate(value string) bool {
	value = strings.TrimSpace(value)
	for _, layout := range v.rules.DateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
