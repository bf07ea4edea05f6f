package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/model"
)

const chequeResponse = `{
	"documentType": "CHEQUE",
	"accountHolderName": "Rajesh Kumar",
	"bankName": "State Bank of India",
	"accountNumber": "12345678901",
	"ifscCode": "SBIN0001234",
	"micrCode": "110002045",
	"chequeNumber": "123456",
	"documentQuality": "GOOD",
	"prediction": "PASS",
	"fraudIndicators": [],
	"confidence": 0.93,
	"tamperingScore": 5
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(chequeResponse, model.KindUnknown)
	require.NoError(t, err)

	assert.Equal(t, model.KindCheque, doc.Kind)
	assert.Equal(t, "Rajesh Kumar", doc.HolderName)
	assert.Equal(t, "State Bank of India", doc.BankName)
	assert.Equal(t, "12345678901", doc.AccountNumber)
	assert.Equal(t, "SBIN0001234", doc.IFSCCode)
	assert.Equal(t, "110002045", doc.MICRCode)
	assert.Equal(t, "123456", doc.ChequeNumber)
	assert.Equal(t, model.PredictionPass, doc.Prediction)
	assert.InDelta(t, 0.93, doc.Confidence, 1e-9)
	assert.InDelta(t, 5, doc.TamperingScore, 1e-9)
	assert.Empty(t, doc.FraudIndicators)
}

func TestParseDocument_CodeFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "json fence", content: "```json\n" + chequeResponse + "\n```"},
		{name: "bare fence", content: "```\n" + chequeResponse + "\n```"},
		{name: "fence with surrounding whitespace", content: "  \n```json\n" + chequeResponse + "\n```\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(tt.content, model.KindUnknown)
			require.NoError(t, err)
			assert.Equal(t, model.KindCheque, doc.Kind)
			assert.Equal(t, "Rajesh Kumar", doc.HolderName)
		})
	}
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty response", content: ""},
		{name: "whitespace only", content: "   \n\t "},
		{name: "empty fence", content: "```json\n```"},
		{name: "prose instead of json", content: "I cannot read this image."},
		{name: "truncated json", content: `{"documentType": "CHEQUE", "accountHolder`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(tt.content, model.KindUnknown)
			assert.Error(t, err)
		})
	}
}

func TestParseDocument_NormalizesSentinels(t *testing.T) {
	content := `{
		"documentType": "CHEQUE",
		"accountHolderName": "NOT_FOUND",
		"bankName": "  HDFC Bank  ",
		"accountNumber": "n/a",
		"ifscCode": "null",
		"micrCode": "NOT_FOUND",
		"confidence": 0.8
	}`

	doc, err := ParseDocument(content, model.KindUnknown)
	require.NoError(t, err)

	assert.Empty(t, doc.HolderName)
	assert.Equal(t, "HDFC Bank", doc.BankName)
	assert.Empty(t, doc.AccountNumber)
	assert.Empty(t, doc.IFSCCode)
	assert.Empty(t, doc.MICRCode)
}

func TestParseDocument_KindCanonicalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		hint model.DocumentKind
		want model.DocumentKind
	}{
		{name: "check spelling", raw: "CHECK", hint: model.KindUnknown, want: model.KindCheque},
		{name: "lowercase cheque", raw: "cheque", hint: model.KindUnknown, want: model.KindCheque},
		{name: "mandate alias", raw: "NACH_MANDATE", hint: model.KindUnknown, want: model.KindMandate},
		{name: "e-nach alias", raw: "E-NACH", hint: model.KindUnknown, want: model.KindMandate},
		{name: "absent label keeps hint", raw: "", hint: model.KindCheque, want: model.KindCheque},
		{name: "absent label without hint", raw: "", hint: model.KindUnknown, want: model.KindUnknown},
		{name: "explicit unknown overrides hint", raw: "UNKNOWN", hint: model.KindCheque, want: model.KindUnknown},
		{name: "unrecognized label", raw: "INVOICE", hint: model.KindMandate, want: model.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{"documentType": "` + tt.raw + `", "confidence": 0.9}`
			doc, err := ParseDocument(content, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Kind)
		})
	}
}

func TestParseDocument_ClampsSignals(t *testing.T) {
	content := `{
		"documentType": "CHEQUE",
		"confidence": 1.4,
		"tamperingScore": 180,
		"fraudIndicators": ["  altered amount  ", "", "   "]
	}`

	doc, err := ParseDocument(content, model.KindUnknown)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, doc.Confidence, 1e-9)
	assert.InDelta(t, 100, doc.TamperingScore, 1e-9)
	assert.Equal(t, []string{"altered amount"}, doc.FraudIndicators)
}

func TestFallbackDocument(t *testing.T) {
	doc := FallbackDocument("unexpected end of JSON input")

	assert.Equal(t, model.KindUnknown, doc.Kind)
	assert.Zero(t, doc.Confidence)
	require.Len(t, doc.FraudIndicators, 1)
	assert.Contains(t, doc.FraudIndicators[0], "unexpected end of JSON input")
	assert.False(t, doc.Identified())
}
