// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Request is one prompt sent to a backend.
type Request struct {
	// System is an optional system instruction.
	System string

	// Prompt is the user message.
	Prompt string

	// Temperature overrides the provider default when non-nil.
	Temperature *float64

	// MaxTokens caps the output when positive.
	MaxTokens int
}

// Backend is a text-generation API. Implementations exist for Gemini and
// OpenAI-compatible chat endpoints.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// NewBackend builds the backend selected by cfg.Provider.
func NewBackend(cfg types.AIConfig) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s api key missing: set ai.api_key, the provider environment variable, or a .secrets/ file", cfg.Provider)
	}

	switch cfg.Provider {
	case types.ProviderGemini, "":
		if cfg.Model == "" {
			cfg.Model = DefaultGeminiModel
		}
		return NewGeminiBackend(cfg), nil
	case types.ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAIBackend(cfg), nil
	case types.ProviderDeepSeek:
		// DeepSeek serves an OpenAI-compatible API.
		if cfg.BaseURL == "" {
			return nil, errors.New("provider deepseek requires ai.base_url (OpenAI-compatible endpoint)")
		}
		if cfg.Model == "" {
			return nil, errors.New("provider deepseek requires ai.model")
		}
		return NewOpenAIBackend(cfg), nil
	default:
		return nil, fmt.Errorf("ai provider %q not supported: use gemini, openai, or deepseek", cfg.Provider)
	}
}
