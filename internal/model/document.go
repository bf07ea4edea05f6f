// Package model defines the core domain models used throughout the application.
package model

import "strings"

// DocumentKind identifies the type of financial instrument in an image.
type DocumentKind string

// Document kind constants.
const (
	KindCheque  DocumentKind = "CHEQUE"
	KindMandate DocumentKind = "ENACH_MANDATE"
	KindUnknown DocumentKind = "UNKNOWN"
)

// Prediction is the hosted model's overall verdict for a document.
type Prediction string

// Prediction constants as reported by the extraction model.
const (
	PredictionPass    Prediction = "PASS"
	PredictionFail    Prediction = "FAIL"
	PredictionFlagged Prediction = "FLAGGED"
)

// notFoundSentinel is the literal some model responses emit for absent fields.
// The extraction parser normalizes it away, but documents arriving over the
// HTTP relay may still carry it.
const notFoundSentinel = "NOT_FOUND"

// ExtractedDocument is the flat record of fields the hosted model read off a
// financial instrument. It is immutable once produced; the validator returns
// a corrected copy rather than mutating it in place.
type ExtractedDocument struct {
	Kind            DocumentKind `json:"documentType"`
	HolderName      string       `json:"accountHolderName"`
	BankName        string       `json:"bankName"`
	AccountNumber   string       `json:"accountNumber"`
	IFSCCode        string       `json:"ifscCode"`
	MICRCode        string       `json:"micrCode"`
	ChequeNumber    string       `json:"chequeNumber,omitempty"`
	MandateRef      string       `json:"umrn,omitempty"`
	Frequency       string       `json:"frequency,omitempty"`
	Date            string       `json:"date,omitempty"`
	Amount          string       `json:"amount,omitempty"`
	Quality         string       `json:"documentQuality,omitempty"`
	Prediction      Prediction   `json:"prediction,omitempty"`
	FraudIndicators []string     `json:"fraudIndicators,omitempty"`
	Confidence      float64      `json:"confidence"`
	TamperingScore  float64      `json:"tamperingScore"`
}

// FieldPresent reports whether a raw field value carries actual content.
// Blank strings and the extraction model's NOT_FOUND sentinel both count as
// absent.
func FieldPresent(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed != "" && trimmed != notFoundSentinel
}

// Clone returns a copy of the document with its own fraud indicator slice.
func (d ExtractedDocument) Clone() ExtractedDocument {
	out := d
	if d.FraudIndicators != nil {
		out.FraudIndicators = make([]string, len(d.FraudIndicators))
		copy(out.FraudIndicators, d.FraudIndicators)
	}
	return out
}

// Identified reports whether the model assigned a usable document type.
func (d ExtractedDocument) Identified() bool {
	return d.Kind == KindCheque || d.Kind == KindMandate
}
