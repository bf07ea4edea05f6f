package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/model"
)

func validCheque() model.ExtractedDocument {
	return model.ExtractedDocument{
		Kind:          model.KindCheque,
		HolderName:    "Rajesh Kumar",
		BankName:      "State Bank of India",
		AccountNumber: "12345678901",
		IFSCCode:      "SBIN0001234",
		MICRCode:      "110002045",
		ChequeNumber:  "123456",
		Confidence:    0.92,
	}
}

func validMandate() model.ExtractedDocument {
	return model.ExtractedDocument{
		Kind:          model.KindMandate,
		HolderName:    "Rajesh Kumar",
		BankName:      "State Bank of India",
		AccountNumber: "12345678901",
		IFSCCode:      "SBIN0001234",
		MandateRef:    "HDFC6000000012345678",
		Frequency:     "MONTHLY",
		Date:          "15/03/2025",
		Amount:        "25000",
		Confidence:    0.90,
	}
}

func findingFields(findings []model.Finding) []string {
	fields := make([]string, 0, len(findings))
	for _, f := range findings {
		fields = append(fields, f.Field)
	}
	return fields
}

func TestValidate_CleanCheque(t *testing.T) {
	v := NewValidator(DefaultRules())

	result := v.Validate(validCheque())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Nil(t, result.Corrected, "no correction expected for a clean document")
}

func TestValidate_CorrectsMisreadIFSC(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.IFSCCode = "SB1N0001234"

	result := v.Validate(doc)

	assert.True(t, result.IsValid, "a correctable misread is not an error")
	require.NotNil(t, result.Corrected)
	assert.Equal(t, "SBIN0001234", result.Corrected.IFSCCode)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "ifscCode", result.Warnings[0].Field)
	assert.Equal(t, model.FindingUnclearText, result.Warnings[0].Kind)

	// The input document is never mutated.
	assert.Equal(t, "SB1N0001234", doc.IFSCCode)
}

func TestValidate_UnfixableIFSC(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.IFSCCode = "XX123"

	result := v.Validate(doc)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "ifscCode", result.Errors[0].Field)
	assert.Equal(t, model.FindingInvalidFormat, result.Errors[0].Kind)
	assert.NotEmpty(t, result.Errors[0].SuggestedFix)
}

func TestValidate_MICRCode(t *testing.T) {
	tests := []struct {
		name      string
		kind      model.DocumentKind
		micr      string
		wantError bool
	}{
		{name: "cheque with valid micr", kind: model.KindCheque, micr: "110002045", wantError: false},
		{name: "cheque with short micr", kind: model.KindCheque, micr: "11000", wantError: true},
		{name: "cheque with missing micr", kind: model.KindCheque, micr: "", wantError: true},
		{name: "mandate without micr band", kind: model.KindMandate, micr: "", wantError: false},
		{name: "mandate with bad micr present", kind: model.KindMandate, micr: "abc", wantError: true},
	}

	v := NewValidator(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc model.ExtractedDocument
			if tt.kind == model.KindCheque {
				doc = validCheque()
			} else {
				doc = validMandate()
			}
			doc.MICRCode = tt.micr

			result := v.Validate(doc)
			if tt.wantError {
				assert.Contains(t, findingFields(result.Errors), "micrCode")
			} else {
				assert.NotContains(t, findingFields(result.Errors), "micrCode")
			}
		})
	}
}

func TestValidate_AccountNumberWarning(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.AccountNumber = "1234"

	result := v.Validate(doc)

	assert.True(t, result.IsValid, "unusual account number is a warning, not an error")
	assert.Contains(t, findingFields(result.Warnings), "accountNumber")
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.HolderName = ""
	doc.BankName = "NOT_FOUND"

	result := v.Validate(doc)

	assert.False(t, result.IsValid)
	fields := findingFields(result.Errors)
	assert.Contains(t, fields, "accountHolderName")
	assert.Contains(t, fields, "bankName")
}

func TestValidate_LowConfidenceWarning(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.Confidence = 0.55

	result := v.Validate(doc)

	assert.True(t, result.IsValid)
	assert.Contains(t, findingFields(result.Warnings), "confidence")
}

func TestValidate_BankPrefixMismatch(t *testing.T) {
	tests := []struct {
		name     string
		ifsc     string
		bank     string
		wantWarn bool
	}{
		{name: "exact match", ifsc: "SBIN0001234", bank: "State Bank of India", wantWarn: false},
		{name: "substring match", ifsc: "HDFC0000240", bank: "HDFC", wantWarn: false},
		{name: "mismatched bank", ifsc: "SBIN0001234", bank: "HDFC Bank", wantWarn: true},
		{name: "unknown prefix skipped", ifsc: "ZZZZ0001234", bank: "Some Cooperative Bank", wantWarn: false},
	}

	v := NewValidator(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validCheque()
			doc.IFSCCode = tt.ifsc
			doc.BankName = tt.bank

			result := v.Validate(doc)
			if tt.wantWarn {
				assert.Contains(t, findingFields(result.Warnings), "bankName")
			} else {
				assert.NotContains(t, findingFields(result.Warnings), "bankName")
			}
		})
	}
}

func TestValidate_MandateFields(t *testing.T) {
	v := NewValidator(DefaultRules())

	t.Run("clean mandate", func(t *testing.T) {
		result := v.Validate(validMandate())
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
	})

	t.Run("short umrn warns", func(t *testing.T) {
		doc := validMandate()
		doc.MandateRef = "ABC123"
		result := v.Validate(doc)
		assert.True(t, result.IsValid)
		assert.Contains(t, findingFields(result.Warnings), "umrn")
	})

	t.Run("unparseable date warns", func(t *testing.T) {
		doc := validMandate()
		doc.Date = "31st March 2025"
		result := v.Validate(doc)
		assert.Contains(t, findingFields(result.Warnings), "date")
	})

	t.Run("absent date is not checked", func(t *testing.T) {
		doc := validMandate()
		doc.Date = ""
		result := v.Validate(doc)
		assert.NotContains(t, findingFields(result.Warnings), "date")
	})

	t.Run("every accepted date layout", func(t *testing.T) {
		for _, date := range []string{"15/03/2025", "15-03-2025", "2025-03-15", "15.03.2025"} {
			doc := validMandate()
			doc.Date = date
			result := v.Validate(doc)
			assert.NotContains(t, findingFields(result.Warnings), "date", "layout %s", date)
		}
	})
}

func TestValidate_Deterministic(t *testing.T) {
	v := NewValidator(DefaultRules())

	doc := validCheque()
	doc.HolderName = ""
	doc.BankName = ""
	doc.IFSCCode = "bad"
	doc.MICRCode = ""

	first := v.Validate(doc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, v.Validate(doc))
	}
}
