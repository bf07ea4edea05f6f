package decision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsentry/docsentry/internal/model"
)

func cleanDoc() model.ExtractedDocument {
	return model.ExtractedDocument{
		Kind:       model.KindCheque,
		Prediction: model.PredictionPass,
		Confidence: 0.95,
	}
}

func TestRiskScore(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name string
		doc  model.ExtractedDocument
		want float64
	}{
		{
			name: "perfect document",
			doc:  model.ExtractedDocument{Confidence: 1.0},
			want: 0,
		},
		{
			name: "confidence term only",
			doc:  model.ExtractedDocument{Confidence: 0.5},
			want: 20,
		},
		{
			name: "tampering term only",
			doc:  model.ExtractedDocument{Confidence: 1.0, TamperingScore: 50},
			want: 20,
		},
		{
			name: "fraud term capped at twenty",
			doc: model.ExtractedDocument{
				Confidence:      1.0,
				FraudIndicators: []string{"a", "b", "c", "d", "e"},
			},
			want: 20,
		},
		{
			name: "worst case capped at one hundred",
			doc: model.ExtractedDocument{
				Confidence:      0,
				TamperingScore:  100,
				FraudIndicators: []string{"a", "b", "c"},
			},
			want: 100,
		},
		{
			name: "out of range inputs clamped",
			doc:  model.ExtractedDocument{Confidence: 1.7, TamperingScore: -30},
			want: 0,
		},
		{
			name: "NaN confidence reads as zero",
			doc:  model.ExtractedDocument{Confidence: math.NaN()},
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.RiskScore(tt.doc), 1e-9)
		})
	}
}

func TestDecide_AutoAccept(t *testing.T) {
	s := NewScorer()

	doc := cleanDoc()
	doc.TamperingScore = 10

	decision := s.Decide(doc)

	assert.Equal(t, model.AutoAccept, decision.Recommendation)
	assert.True(t, decision.AutoProcessable)
	assert.LessOrEqual(t, decision.RiskScore, 10.0)
	assert.NotEmpty(t, decision.Reason)
}

func TestDecide_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ExtractedDocument)
		want   model.Recommendation
	}{
		{
			name:   "fail verdict rejects",
			mutate: func(d *model.ExtractedDocument) { d.Prediction = model.PredictionFail },
			want:   model.AutoReject,
		},
		{
			name:   "very low confidence rejects",
			mutate: func(d *model.ExtractedDocument) { d.Confidence = 0.30 },
			want:   model.AutoReject,
		},
		{
			name: "three fraud indicators reject despite high confidence",
			mutate: func(d *model.ExtractedDocument) {
				d.FraudIndicators = []string{"signature mismatch", "altered amount", "font inconsistency"}
			},
			want: model.AutoReject,
		},
		{
			name:   "unidentified document rejects",
			mutate: func(d *model.ExtractedDocument) { d.Kind = model.KindUnknown },
			want:   model.AutoReject,
		},
		{
			name:   "zero value document rejects",
			mutate: func(d *model.ExtractedDocument) { *d = model.ExtractedDocument{} },
			want:   model.AutoReject,
		},
		{
			name:   "high tampering requires review",
			mutate: func(d *model.ExtractedDocument) { d.TamperingScore = 60 },
			want:   model.ReviewRequired,
		},
		{
			name: "two fraud indicators require review despite high confidence",
			mutate: func(d *model.ExtractedDocument) {
				d.FraudIndicators = []string{"signature mismatch", "altered amount"}
			},
			want: model.ReviewRequired,
		},
		{
			name:   "middling confidence requires review",
			mutate: func(d *model.ExtractedDocument) { d.Confidence = 0.55 },
			want:   model.ReviewRequired,
		},
		{
			name:   "flagged verdict recommends review",
			mutate: func(d *model.ExtractedDocument) { d.Prediction = model.PredictionFlagged },
			want:   model.ReviewRecommended,
		},
		{
			name:   "moderate tampering recommends review",
			mutate: func(d *model.ExtractedDocument) { d.TamperingScore = 40 },
			want:   model.ReviewRecommended,
		},
		{
			name: "single fraud indicator recommends review",
			mutate: func(d *model.ExtractedDocument) {
				d.FraudIndicators = []string{"smudged signature"}
			},
			want: model.ReviewRecommended,
		},
		{
			name:   "below accept confidence recommends review",
			mutate: func(d *model.ExtractedDocument) { d.Confidence = 0.80 },
			want:   model.ReviewRecommended,
		},
		{
			name:   "boundary confidence 0.85 accepts",
			mutate: func(d *model.ExtractedDocument) { d.Confidence = 0.85 },
			want:   model.AutoAccept,
		},
		{
			name:   "boundary tampering 50 does not require review",
			mutate: func(d *model.ExtractedDocument) { d.TamperingScore = 50 },
			want:   model.ReviewRecommended,
		},
		{
			name:   "boundary confidence 0.40 does not reject",
			mutate: func(d *model.ExtractedDocument) { d.Confidence = 0.40 },
			want:   model.ReviewRequired,
		},
	}

	s := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := cleanDoc()
			tt.mutate(&doc)

			decision := s.Decide(doc)
			assert.Equal(t, tt.want, decision.Recommendation)
			assert.Equal(t, tt.want == model.AutoAccept, decision.AutoProcessable)
		})
	}
}

func TestDecide_RuleOrdering(t *testing.T) {
	s := NewScorer()

	// A document matching both a reject rule and a review rule must reject:
	// low confidence outranks high tampering.
	doc := cleanDoc()
	doc.Confidence = 0.30
	doc.TamperingScore = 60

	decision := s.Decide(doc)
	assert.Equal(t, model.AutoReject, decision.Recommendation)

	// Two fraud indicators outrank a FLAGGED verdict.
	doc = cleanDoc()
	doc.Prediction = model.PredictionFlagged
	doc.FraudIndicators = []string{"a", "b"}

	decision = s.Decide(doc)
	assert.Equal(t, model.ReviewRequired, decision.Recommendation)
}
