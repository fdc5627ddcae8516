// Package llm wraps the external text-generation backends used for meal
// analysis, meal plans and insights.
package llm

import (
	"context"
	"errors"
	"fmt"

	"healthtrack/config"
)

var (
	ErrNotConfigured = errors.New("llm: api key not configured")
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Generator produces free text for a prompt. Implementations may fail or time
// out; callers decide what to do about it.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// New returns the configured generator, or nil when text generation is
// disabled. A nil Generator is the "unavailable" state.
func New(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case "", "none", "disabled":
		return nil, nil
	}
	if cfg.APIKey == "" || cfg.APIKey == "your_openai_api_key_here" {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg), nil
	case "huggingface", "hf":
		return NewHuggingFaceClient(cfg), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
