package extract

import (
	"context"
	"time"

	"github.com/docsentry/docsentry/internal/model"
)

// ImageRequest carries one document image to a provider.
type ImageRequest struct {
	Data []byte
	MIME string
	// Kind hints which instrument the caller expects. KindUnknown lets the
	// model classify the document itself.
	Kind model.DocumentKind
}

// Client is the raw transport to one hosted model provider. It returns the
// model's text response verbatim; parsing and fallback handling live in the
// Extractor so every provider shares them.
type Client interface {
	Extract(ctx context.Context, req ImageRequest) (string, error)
}

// Config holds configuration for the extraction layer.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}
