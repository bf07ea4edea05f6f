package extract

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/docsentry/docsentry/internal/common"
	"github.com/docsentry/docsentry/internal/model"
)

// Extractor wraps a provider client with rate limiting, caching, retries,
// and the parse-failure fallback contract: a response that cannot be parsed
// yields a zero-confidence document carrying an explanatory fraud indicator
// rather than an error, so downstream scoring lands on AutoReject.
type Extractor struct {
	client      Client
	cache       *documentCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   common.RetryOptions
}

// NewExtractor creates an extractor for the configured provider.
func NewExtractor(cfg Config, logger *slog.Logger) (*Extractor, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction client: %w", err)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Extractor{
		client:      client,
		cache:       newDocumentCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}, nil
}

// NewExtractorWithClient builds an extractor around an existing client.
// Used by tests to substitute a mock transport.
func NewExtractorWithClient(client Client, logger *slog.Logger) *Extractor {
	return &Extractor{
		client:      client,
		cache:       newDocumentCache(0),
		rateLimiter: newRateLimiter(0),
		logger:      logger,
		retryOpts:   common.RetryOptions{MaxAttempts: 1},
	}
}

// Extract runs one image through the hosted model and returns the parsed
// document. Transport failures are retried; an unparseable response is not
// an error but the safe fallback document.
func (e *Extractor) Extract(ctx context.Context, req ImageRequest) (model.ExtractedDocument, error) {
	key := cacheKey(req)
	if doc, found := e.cache.get(key); found {
		e.logger.Debug("cache hit for image", "kind", req.Kind, "bytes", len(req.Data))
		return doc, nil
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		return model.ExtractedDocument{}, fmt.Errorf("rate limit error: %w", err)
	}

	var raw string
	err := common.WithRetry(ctx, func() error {
		response, reqErr := e.client.Extract(ctx, req)
		if reqErr != nil {
			e.logger.Warn("extraction attempt failed", "error", reqErr, "kind", req.Kind)
			return &common.RetryableError{Err: reqErr, Retryable: true}
		}
		raw = response
		return nil
	}, e.retryOpts)
	if err != nil {
		return model.ExtractedDocument{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	doc, parseErr := ParseDocument(raw, req.Kind)
	if parseErr != nil {
		e.logger.Warn("model response unparseable, substituting fallback document",
			"error", parseErr,
			"kind", req.Kind)
		doc = FallbackDocument(parseErr.Error())
	}

	e.cache.set(key, doc)

	e.logger.Info("document extracted",
		"kind", doc.Kind,
		"confidence", doc.Confidence,
		"tampering_score", doc.TamperingScore,
		"fraud_indicators", len(doc.FraudIndicators))

	return doc, nil
}

// Close stops background goroutines and cleans up resources.
func (e *Extractor) Close() error {
	if e.cache != nil {
		e.cache.Close()
	}
	if e.rateLimiter != nil {
		e.rateLimiter.Close()
	}
	return nil
}

func cacheKey(req ImageRequest) string {
	sum := sha256.Sum256(req.Data)
	return fmt.Sprintf("%s:%x", req.Kind, sum)
}
