package model

// FindingSeverity distinguishes blocking errors from advisory warnings.
type FindingSeverity string

// Finding severity constants.
const (
	SeverityError   FindingSeverity = "ERROR"
	SeverityWarning FindingSeverity = "WARNING"
)

// FindingKind categorizes a validation finding.
type FindingKind string

// Error kinds.
const (
	FindingMissingField     FindingKind = "MISSING_FIELD"
	FindingInvalidFormat    FindingKind = "INVALID_FORMAT"
	FindingInvalidChecksum  FindingKind = "INVALID_CHECKSUM"
	FindingInconsistentData FindingKind = "INCONSISTENT_DATA"
	FindingPoorImageQuality FindingKind = "POOR_IMAGE_QUALITY"
)

// Warning kinds.
const (
	FindingLowConfidence    FindingKind = "LOW_CONFIDENCE"
	FindingUnclearText      FindingKind = "UNCLEAR_TEXT"
	FindingPartialOcclusion FindingKind = "PARTIAL_OCCLUSION"
	FindingUnusualFormat    FindingKind = "UNUSUAL_FORMAT"
)

// Finding is a single validation error or warning for one field.
// Findings are accumulated, never short-circuited: a caller always sees
// every detected issue in one pass.
type Finding struct {
	Field        string          `json:"field"`
	Kind         FindingKind     `json:"kind"`
	Message      string          `json:"message"`
	SuggestedFix string          `json:"suggestedFix,omitempty"`
	Severity     FindingSeverity `json:"severity"`
}

// ValidationResult is the full outcome of validating one document.
// Corrected is nil unless at least one field changed from the input.
type ValidationResult struct {
	Corrected *ExtractedDocument `json:"correctedData,omitempty"`
	Errors    []Finding          `json:"errors"`
	Warnings  []Finding          `json:"warnings"`
	IsValid   bool               `json:"isValid"`
}
