package model

// Recommendation is the discrete automation outcome for one document.
type Recommendation string

// Recommendation constants, safest first.
const (
	AutoAccept        Recommendation = "AUTO_ACCEPT"
	ReviewRecommended Recommendation = "REVIEW_RECOMMENDED"
	ReviewRequired    Recommendation = "REVIEW_REQUIRED"
	AutoReject        Recommendation = "AUTO_REJECT"
)

// ReviewDecision combines the model's self-reported signals into an
// automation recommendation. RiskScore is 0-100, higher is riskier.
// AutoProcessable is true only for AutoAccept.
type ReviewDecision struct {
	Recommendation  Recommendation `json:"recommendation"`
	Reason          string         `json:"reason"`
	RiskScore       float64        `json:"riskScore"`
	AutoProcessable bool           `json:"autoProcessable"`
}
