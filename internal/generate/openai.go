// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// OpenAIBackend calls an OpenAI-compatible chat completions endpoint through
// the official openai-go SDK. It serves both the openai and deepseek providers.
type OpenAIBackend struct {
	provider types.Provider
	model    string
	client   openai.Client
}

// NewOpenAIBackend creates a backend for cfg. Neither the SDK nor the
// transport retries; the Generator applies ai.max_retries.
func NewOpenAIBackend(cfg types.AIConfig) *OpenAIBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httputil.NewClient(cfg.HTTPConfig, 0)),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, option.WithHeader("User-Agent", cfg.UserAgent))
	}
	provider := cfg.Provider
	if provider == "" {
		provider = types.ProviderOpenAI
	}
	return &OpenAIBackend{provider: provider, model: cfg.Model, client: openai.NewClient(opts...)}
}

// Name returns the provider name.
func (o *OpenAIBackend) Name() string { return string(o.provider) }

// Complete sends one chat completion and returns the first choice.
func (o *OpenAIBackend) Complete(ctx context.Context, req Request) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
