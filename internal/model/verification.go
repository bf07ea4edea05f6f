package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus tracks whether a human has looked at a stored verification.
type ReviewStatus string

// Review status constants.
const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewAccepted ReviewStatus = "ACCEPTED"
	ReviewRejected ReviewStatus = "REJECTED"
	ReviewAuto     ReviewStatus = "AUTO"
)

// VerificationRecord is the audit-trail envelope for one completed
// verification. The pure validation/scoring core never touches storage;
// records exist only in the surrounding orchestration.
type VerificationRecord struct {
	CreatedAt  time.Time          `json:"createdAt"`
	ReviewedAt *time.Time         `json:"reviewedAt,omitempty"`
	ID         string             `json:"id"`
	SourcePath string             `json:"sourcePath,omitempty"`
	Provider   string             `json:"provider,omitempty"`
	ModelName  string             `json:"model,omitempty"`
	Kind       DocumentKind       `json:"documentType"`
	Status     ReviewStatus       `json:"reviewStatus"`
	Document   ExtractedDocument  `json:"document"`
	Validation ValidationResult   `json:"validation"`
	Decision   ReviewDecision     `json:"decision"`
}

// NewVerificationRecord assembles a record with a fresh ID and timestamp.
// The review status starts at Auto for auto-processable decisions and
// Pending otherwise.
func NewVerificationRecord(doc ExtractedDocument, validation ValidationResult, decision ReviewDecision) VerificationRecord {
	status := ReviewPending
	if decision.AutoProcessable {
		status = ReviewAuto
	}
	return VerificationRecord{
		ID:         uuid.NewString(),
		Kind:       doc.Kind,
		Status:     status,
		Document:   doc,
		Validation: validation,
		Decision:   decision,
		CreatedAt:  time.Now().UTC(),
	}
}
