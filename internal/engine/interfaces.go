// Package engine orchestrates the verification pipeline: extract a document
// from an image, validate its fields, and score it for review.
package engine

import (
	"context"

	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/model"
)

// Extractor produces a parsed document from one image. Satisfied by
// extract.Extractor in production and MockExtractor in tests.
type Extractor interface {
	Extract(ctx context.Context, req extract.ImageRequest) (model.ExtractedDocument, error)
}

// Validator checks a document's fields and compares document pairs.
type Validator interface {
	Validate(doc model.ExtractedDocument) model.ValidationResult
	Compare(cheque, mandate model.ExtractedDocument) model.CrossDocumentComparison
}

// Scorer turns a document's self-reported signals into a review decision.
type Scorer interface {
	Decide(doc model.ExtractedDocument) model.ReviewDecision
}
