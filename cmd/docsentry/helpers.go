package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/docsentry/docsentry/internal/config"
	"github.com/docsentry/docsentry/internal/decision"
	"github.com/docsentry/docsentry/internal/engine"
	"github.com/docsentry/docsentry/internal/extract"
	"github.com/docsentry/docsentry/internal/storage"
	"github.com/docsentry/docsentry/internal/validate"
)

func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func extractionConfig() extract.Config {
	return extract.Config{
		Provider:    viper.GetString("extraction.provider"),
		APIKey:      viper.GetString("extraction.api_key"),
		Model:       viper.GetString("extraction.model"),
		MaxRetries:  viper.GetInt("extraction.max_retries"),
		RetryDelay:  viper.GetDuration("extraction.retry_delay"),
		CacheTTL:    viper.GetDuration("extraction.cache_ttl"),
		RateLimit:   viper.GetInt("extraction.rate_limit"),
		Temperature: viper.GetFloat64("extraction.temperature"),
		MaxTokens:   viper.GetInt("extraction.max_tokens"),
	}
}

// newVerifier assembles the full pipeline from configuration. The caller
// must Close the returned extractor.
func newVerifier(logger *slog.Logger) (*engine.Verifier, *extract.Extractor, error) {
	extractor, err := extract.NewExtractor(extractionConfig(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	verifier := engine.New(
		extractor,
		validate.NewValidator(validate.DefaultRules()),
		decision.NewScorer(),
		logger,
	)
	return verifier, extractor, nil
}

func providerLabel() (provider, modelName string) {
	provider = viper.GetString("extraction.provider")
	if provider == "" {
		provider = "gemini"
	}
	return provider, viper.GetString("extraction.model")
}

func batchTimeout() time.Duration {
	timeout := viper.GetDuration("batch.timeout")
	if timeout == 0 {
		timeout = 10 * time.Minute
	}
	return timeout
}
