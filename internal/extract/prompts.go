package extract

import (
	"fmt"

	"github.com/docsentry/docsentry/internal/model"
)

const systemPrompt = `You are a document verification engine for Indian financial instruments.
You read an image of a bank cheque or an e-NACH (NACH debit) mandate form and
return its fields as strict JSON. You also assess the image for signs of
digital tampering and fraud.

Rules you must follow:
1. Respond with a single JSON object and nothing else. No markdown, no
   commentary, no code fences.
2. Transcribe printed values exactly as they appear. Do not correct spelling
   or reformat codes.
3. If a field is not visible or not readable, use an empty string.
4. confidence is your overall extraction confidence between 0.0 and 1.0.
5. tamperingScore is 0-100, higher meaning more likely digitally manipulated
   (look for font inconsistencies, misaligned text, copy-paste artifacts,
   resolution mismatches around field values).
6. fraudIndicators lists each specific visual anomaly you found, one short
   phrase per entry. Leave it empty when the document looks clean.
7. prediction is "PASS" for a clean readable document, "FLAGGED" when
   something warrants a second look, "FAIL" when the document is clearly
   invalid or manipulated.`

const responseSchema = `{
  "documentType": "CHEQUE | ENACH_MANDATE | UNKNOWN",
  "accountHolderName": "string",
  "bankName": "string",
  "accountNumber": "string",
  "ifscCode": "string",
  "micrCode": "string",
  "chequeNumber": "string (cheques only)",
  "umrn": "string (mandates only)",
  "frequency": "string (mandates only)",
  "date": "string as printed",
  "amount": "string as printed",
  "documentQuality": "GOOD | BLURRY | PARTIAL | POOR",
  "prediction": "PASS | FLAGGED | FAIL",
  "fraudIndicators": ["string"],
  "confidence": 0.0,
  "tamperingScore": 0
}`

// buildUserPrompt assembles the per-request instruction for one image.
func buildUserPrompt(kind model.DocumentKind) string {
	var hint string
	switch kind {
	case model.KindCheque:
		hint = "The image should contain a bank cheque. Pay attention to the MICR band along the bottom edge and the printed cheque number."
	case model.KindMandate:
		hint = "The image should contain an e-NACH mandate form. Extract the UMRN and the debit frequency along with the bank details."
	default:
		hint = "Classify the document type yourself before extracting fields."
	}
	return fmt.Sprintf(`%s

Extract every field of this document and respond with JSON exactly matching
this schema:

%s`, hint, responseSchema)
}
