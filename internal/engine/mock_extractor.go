package engine

import (
	"context"
	"sync"

	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/model"
)

// MockExtractor is a test double returning canned documents keyed by
// requested kind, with an optional forced error.
type MockExtractor struct {
	Err       error
	Documents map[model.DocumentKind]model.ExtractedDocument
	Default   model.ExtractedDocument
	mu        sync.Mutex
	calls     int
}

// Extract returns the canned document for the request's kind.
func (m *MockExtractor) Extract(_ context.Context, req extract.ImageRequest) (model.ExtractedDocument, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return model.ExtractedDocument{}, m.Err
	}
	if doc, ok := m.Documents[req.Kind]; ok {
		return doc, nil
	}
	return m.Default, nil
}

// Calls reports how many times Extract was invoked.
func (m *MockExtractor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
