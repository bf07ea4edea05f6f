package model

// MatchOutcome is the three-state result of comparing one field across two
// documents. Indeterminate means the field was absent on both sides, so no
// judgment is possible.
type MatchOutcome string

// Match outcome constants.
const (
	OutcomeMatch         MatchOutcome = "MATCH"
	OutcomeMismatch      MatchOutcome = "MISMATCH"
	OutcomeIndeterminate MatchOutcome = "INDETERMINATE"
)

// FieldMatch records the comparison of one shared field across a document pair.
type FieldMatch struct {
	Field      string       `json:"field"`
	ChequeVal  string       `json:"chequeValue"`
	MandateVal string       `json:"mandateValue"`
	Outcome    MatchOutcome `json:"outcome"`
	Similarity float64      `json:"similarity"`
	Exact      bool         `json:"exactMatch"`
}

// ConflictSeverity grades how serious a cross-document disagreement is.
type ConflictSeverity string

// Conflict severity constants, worst first.
const (
	ConflictCritical ConflictSeverity = "CRITICAL"
	ConflictHigh     ConflictSeverity = "HIGH"
	ConflictMedium   ConflictSeverity = "MEDIUM"
	ConflictLow      ConflictSeverity = "LOW"
)

// Conflict is a cross-document disagreement serious enough to report.
type Conflict struct {
	Field       string           `json:"field"`
	Severity    ConflictSeverity `json:"severity"`
	Description string           `json:"description"`
	ChequeVal   string           `json:"chequeValue"`
	MandateVal  string           `json:"mandateValue"`
}

// CrossDocumentComparison is the result of checking two documents for
// consistency. Passed is false exactly when a Critical conflict exists.
type CrossDocumentComparison struct {
	Matches      []FieldMatch `json:"matchingFields"`
	Conflicts    []Conflict   `json:"conflicts"`
	OverallScore float64      `json:"overallScore"`
	Passed       bool         `json:"crossValidationPassed"`
}
