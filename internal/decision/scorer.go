// Package decision converts the extraction model's self-reported signals
// into a discrete automation recommendation.
package decision

import (
	"fmt"
	"math"

	"github.com/docsentry/docsentry/internal/model"
)

// Scorer combines confidence, tampering score, and fraud indicator count
// into a ReviewDecision. It is a pure function over its input: no state,
// no side effects, safe for concurrent use.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// RiskScore computes the composite 0-100 risk value. Each term is capped
// independently before summing: confidence contributes at most 40,
// tampering at most 40, fraud indicator count at most 20.
func (s *Scorer) RiskScore(doc model.ExtractedDocument) float64 {
	confidence := clamp01(doc.Confidence)
	tampering := clampRange(doc.TamperingScore, 0, 100)
	fraudTerm := math.Min(float64(len(doc.FraudIndicators))*10, 20)

	score := (1-confidence)*40 + (tampering/100)*40 + fraudTerm
	return math.Min(100, score)
}

// Decide walks the decision tree top-down; the first matching rule wins.
// Specific hard rules deliberately precede the general confidence and
// tampering bands, so a fraud count of exactly 2 forces ReviewRequired even
// at very high confidence. Missing inputs already read as their most
// conservative value: an unset confidence is 0.0 and forces AutoReject.
func (s *Scorer) Decide(doc model.ExtractedDocument) model.ReviewDecision {
	risk := s.RiskScore(doc)
	confidence := clamp01(doc.Confidence)
	tampering := clampRange(doc.TamperingScore, 0, 100)
	fraudCount := len(doc.FraudIndicators)

	recommendation, reason := func() (model.Recommendation, string) {
		switch {
		case doc.Prediction == model.PredictionFail:
			return model.AutoReject, "model verdict is FAIL"
		case confidence < 0.40:
			return model.AutoReject, fmt.Sprintf("confidence %.2f is below 0.40", confidence)
		case fraudCount >= 3:
			return model.AutoReject, fmt.Sprintf("%d fraud indicators reported", fraudCount)
		case !doc.Identified():
			return model.AutoReject, "document type could not be identified"
		case tampering > 50:
			return model.ReviewRequired, fmt.Sprintf("tampering score %.0f exceeds 50", tampering)
		case fraudCount >= 2:
			return model.ReviewRequired, fmt.Sprintf("%d fraud indicators reported", fraudCount)
		case confidence < 0.60:
			return model.ReviewRequired, fmt.Sprintf("confidence %.2f is below 0.60", confidence)
		case doc.Prediction == model.PredictionFlagged:
			return model.ReviewRecommended, "model verdict is FLAGGED"
		case tampering > 35:
			return model.ReviewRecommended, fmt.Sprintf("tampering score %.0f exceeds 35", tampering)
		case fraudCount == 1:
			return model.ReviewRecommended, fmt.Sprintf("fraud indicator reported: %s", doc.FraudIndicators[0])
		case confidence < 0.85:
			return model.ReviewRecommended, fmt.Sprintf("confidence %.2f is below 0.85", confidence)
		default:
			return model.AutoAccept, fmt.Sprintf("confidence %.2f with no risk signals", confidence)
		}
	}()

	return model.ReviewDecision{
		Recommendation:  recommendation,
		Reason:          reason,
		RiskScore:       risk,
		AutoProcessable: recommendation == model.AutoAccept,
	}
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
