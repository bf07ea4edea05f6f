package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldPresent(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "normal value", value: "SBIN0001234", want: true},
		{name: "empty", value: "", want: false},
		{name: "whitespace only", value: "   ", want: false},
		{name: "not found sentinel", value: "NOT_FOUND", want: false},
		{name: "sentinel with padding", value: "  NOT_FOUND  ", want: false},
		{name: "sentinel as substring counts", value: "NOT_FOUND_HERE", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldPresent(tt.value))
		})
	}
}

func TestClone(t *testing.T) {
	doc := ExtractedDocument{
		Kind:            KindCheque,
		HolderName:      "Rajesh Kumar",
		FraudIndicators: []string{"altered amount"},
	}

	clone := doc.Clone()
	clone.FraudIndicators[0] = "changed"

	assert.Equal(t, "altered amount", doc.FraudIndicators[0], "clone must not share the indicator slice")
	assert.Equal(t, doc.HolderName, clone.HolderName)
}

func TestIdentified(t *testing.T) {
	assert.True(t, ExtractedDocument{Kind: KindCheque}.Identified())
	assert.True(t, ExtractedDocument{Kind: KindMandate}.Identified())
	assert.False(t, ExtractedDocument{Kind: KindUnknown}.Identified())
	assert.False(t, ExtractedDocument{}.Identified())
}
