package extract

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docsentry/docsentry/internal/common"
)

// geminiClient implements Client against the Gemini API.
type geminiClient struct {
	apiKey      string
	model       string
	temperature float32
	maxTokens   int32
}

// newGeminiClient creates a new Gemini API client.
func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	maxTokens := int32(cfg.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 2048
	}

	return &geminiClient{
		apiKey:      cfg.APIKey,
		model:       modelName,
		temperature: float32(cfg.Temperature),
		maxTokens:   maxTokens,
	}, nil
}

// Extract sends the image to Gemini and returns the raw JSON text response.
func (c *geminiClient) Extract(ctx context.Context, req ImageRequest) (string, error) {
	if len(req.Data) == 0 {
		return "", common.ErrUnreadableImage
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	m := client.GenerativeModel(c.model)
	temperature := c.temperature
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  &c.maxTokens,
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	mime := req.MIME
	if mime == "" {
		mime = "image/jpeg"
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(buildUserPrompt(req.Kind)),
		genai.Blob{MIMEType: mime, Data: req.Data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", common.ErrEmptyResponse
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok && string(text) != "" {
				return string(text)
			}
		}
	}
	return ""
}
