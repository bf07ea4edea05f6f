// Package validate checks extracted document fields against Indian banking
// format rules, applies best-effort OCR corrections, and cross-checks
// document pairs for consistency.
package validate

import "regexp"

// Rules is the immutable configuration a Validator operates on. Injecting it
// at construction keeps the validator free of global state and lets tests
// swap thresholds or lookup tables.
type Rules struct {
	RoutingCode     *regexp.Regexp
	RoutingCheck    *regexp.Regexp
	AccountNumber   *regexp.Regexp
	ChequeNumber    *regexp.Regexp
	MandateRef      *regexp.Regexp
	BankByPrefix    map[string]string
	DateLayouts     []string
	MinConfidence   float64
	MatchThreshold  float64
	HolderThreshold float64
	BankThreshold   float64
}

// DefaultRules returns the standard rule set for Indian cheque and e-NACH
// mandate instruments.
func DefaultRules() Rules {
	return Rules{
		// IFSC: 4 letters, a literal zero, 6 alphanumerics.
		RoutingCode: regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`),
		// MICR: 9 digits.
		RoutingCheck: regexp.MustCompile(`^[0-9]{9}$`),
		AccountNumber: regexp.MustCompile(`^[0-9]{9,18}$`),
		ChequeNumber:  regexp.MustCompile(`^[0-9]{6,8}$`),
		// UMRN: 15-25 uppercase alphanumerics.
		MandateRef: regexp.MustCompile(`^[A-Z0-9]{15,25}$`),
		BankByPrefix: map[string]string{
			"SBIN": "State Bank of India",
			"HDFC": "HDFC Bank",
			"ICIC": "ICICI Bank",
			"UTIB": "Axis Bank",
			"PUNB": "Punjab National Bank",
			"KKBK": "Kotak Mahindra Bank",
			"YESB": "Yes Bank",
			"BARB": "Bank of Baroda",
			"CNRB": "Canara Bank",
			"UBIN": "Union Bank of India",
			"IDIB": "Indian Bank",
			"INDB": "IndusInd Bank",
			"FDRL": "Federal Bank",
			"IOBA": "Indian Overseas Bank",
		},
		DateLayouts: []string{
			"02/01/2006",
			"02-01-2006",
			"2006-01-02",
			"02.01.2006",
		},
		MinConfidence:   0.7,
		MatchThreshold:  0.9,
		HolderThreshold: 0.8,
		BankThreshold:   0.6,
	}
}
