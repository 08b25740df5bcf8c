// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"strings"

	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
	"github.com/hoangvvo/llm-sdk/sdk-go/google"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// GeminiBackend calls the Gemini generateContent API through llm-sdk's
// Google provider.
type GeminiBackend struct {
	model *google.GoogleModel
}

// NewGeminiBackend creates a backend for cfg.Model. Requests go through the
// shared httputil client, which applies the timeout and user agent.
func NewGeminiBackend(cfg types.AIConfig) *GeminiBackend {
	return &GeminiBackend{
		model: google.NewGoogleModel(cfg.Model, google.GoogleModelOptions{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httputil.NewClient(cfg.HTTPConfig, 0),
		}),
	}
}

// Name returns the provider name.
func (g *GeminiBackend) Name() string { return string(types.ProviderGemini) }

// Complete sends one prompt and concatenates the returned text parts.
func (g *GeminiBackend) Complete(ctx context.Context, req Request) (string, error) {
	input := &llmsdk.LanguageModelInput{
		Messages: []llmsdk.Message{
			llmsdk.NewUserMessage(llmsdk.NewTextPart(req.Prompt)),
		},
		Temperature: req.Temperature,
	}
	if req.System != "" {
		system := req.System
		input.SystemPrompt = &system
	}
	if req.MaxTokens > 0 {
		n := uint32(req.MaxTokens)
		input.MaxTokens = &n
	}

	resp, err := g.model.Generate(ctx, input)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, part := range resp.Content {
		if part.TextPart != nil {
			b.WriteString(part.TextPart.Text)
		}
	}
	return b.String(), nil
}
