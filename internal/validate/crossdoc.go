package validate

import (
	"fmt"
	"strings"

	"github.com/docsentry/docsentry/internal/model"
)

// crossField describes one field compared across a cheque/mandate pair.
type crossField struct {
	name    string
	cheque  func(model.ExtractedDocument) string
	mandate func(model.ExtractedDocument) string
}

var crossFields = []crossField{
	{
		name:    "accountHolderName",
		cheque:  func(d model.ExtractedDocument) string { return d.HolderName },
		mandate: func(d model.ExtractedDocument) string { return d.HolderName },
	},
	{
		name:    "accountNumber",
		cheque:  func(d model.ExtractedDocument) string { return d.AccountNumber },
		mandate: func(d model.ExtractedDocument) string { return d.AccountNumber },
	},
	{
		name:    "ifscCode",
		cheque:  func(d model.ExtractedDocument) string { return d.IFSCCode },
		mandate: func(d model.ExtractedDocument) string { return d.IFSCCode },
	},
	{
		name:    "bankName",
		cheque:  func(d model.ExtractedDocument) string { return d.BankName },
		mandate: func(d model.ExtractedDocument) string { return d.BankName },
	},
}

// Compare cross-checks a cheque against an e-NACH mandate. Field values are
// compared case-insensitively after whitespace normalization; non-exact
// pairs fall back to normalized edit-distance similarity. Passed is false
// exactly when a Critical conflict exists.
func (v *Validator) Compare(cheque, mandate model.ExtractedDocument) model.CrossDocumentComparison {
	matches := make([]model.FieldMatch, 0, len(crossFields))
	var conflicts []model.Conflict

	simSum := 0.0
	simCount := 0

	for _, f := range crossFields {
		rawA := f.cheque(cheque)
		rawB := f.mandate(mandate)
		m := v.compareValues(f.name, rawA, rawB)
		matches = append(matches, m)

		if m.Outcome == model.OutcomeIndeterminate {
			continue
		}
		simSum += m.Similarity
		simCount++

		if c, bad := v.conflictFor(f.name, m); bad {
			conflicts = append(conflicts, c)
		}
	}

	result := model.CrossDocumentComparison{
		Matches:   matches,
		Conflicts: conflicts,
	}
	result.Passed = !hasSeverity(conflicts, model.ConflictCritical)

	switch {
	case hasSeverity(conflicts, model.ConflictCritical):
		result.OverallScore = 0.0
	case hasSeverity(conflicts, model.ConflictHigh):
		result.OverallScore = 0.5
	case hasSeverity(conflicts, model.ConflictMedium):
		result.OverallScore = 0.7
	case simCount > 0:
		result.OverallScore = simSum / float64(simCount)
	default:
		result.OverallScore = 0.0
	}

	return result
}

func (v *Validator) compareValues(field, rawA, rawB string) model.FieldMatch {
	m := model.FieldMatch{Field: field, ChequeVal: rawA, MandateVal: rawB}

	presentA := model.FieldPresent(rawA)
	presentB := model.FieldPresent(rawB)
	if !presentA && !presentB {
		m.Outcome = model.OutcomeIndeterminate
		return m
	}

	a := normalizeValue(rawA)
	b := normalizeValue(rawB)
	if a == b {
		m.Exact = true
		m.Similarity = 1.0
		m.Outcome = model.OutcomeMatch
		return m
	}

	m.Similarity = similarity(a, b)
	if m.Similarity > v.rules.MatchThreshold {
		m.Outcome = model.OutcomeMatch
	} else {
		m.Outcome = model.OutcomeMismatch
	}
	return m
}

// conflictFor applies the per-field severity ladder: holder names conflict
// below the holder threshold, account and routing codes conflict on any
// non-exact value, bank names only below the bank threshold.
func (v *Validator) conflictFor(field string, m model.FieldMatch) (model.Conflict, bool) {
	c := model.Conflict{
		Field:      field,
		ChequeVal:  m.ChequeVal,
		MandateVal: m.MandateVal,
	}

	switch field {
	case "accountHolderName":
		if m.Similarity < v.rules.HolderThreshold {
			c.Severity = model.ConflictCritical
			c.Description = fmt.Sprintf("account holder names differ (similarity %.2f)", m.Similarity)
			return c, true
		}
	case "accountNumber":
		if !m.Exact {
			c.Severity = model.ConflictCritical
			c.Description = "account numbers differ between cheque and mandate"
			return c, true
		}
	case "ifscCode":
		if !m.Exact {
			c.Severity = model.ConflictHigh
			c.Description = "IFSC codes differ between cheque and mandate"
			return c, true
		}
	case "bankName":
		if m.Similarity < v.rules.BankThreshold {
			c.Severity = model.ConflictMedium
			c.Description = fmt.Sprintf("bank names differ (similarity %.2f)", m.Similarity)
			return c, true
		}
	}
	return model.Conflict{}, false
}

// normalizeValue lowercases and collapses runs of whitespace so formatting
// differences alone never count as a mismatch.
func normalizeValue(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func hasSeverity(conflicts []model.Conflict, severity model.ConflictSeverity) bool {
	for _, c := range conflicts {
		if c.Severity == severity {
			return true
		}
	}
	return false
}
