// Package extract sends document images to a hosted multimodal model and
// parses its JSON response into the domain's ExtractedDocument. It supports
// multiple providers (Gemini, Anthropic) behind one interface, with retry
// logic, rate limiting, and response caching.
package extract
