// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces blog articles and social-media posts by sending
// rendered prompts to a text-generation backend.
//
// The primary call of each flow returns its error to the caller. Secondary
// calls (summary, quotes, SEO) are best effort: a failure leaves the field
// empty and is recorded in Generation.Warnings.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/content-engine/internal/prompt"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Titles used when the generated text has no Markdown heading.
const (
	DefaultArticleTitle = "Generated Blog"
	DefaultPostTitle    = "LinkedIn Post"
)

// ErrEmptyResponse is returned when the backend replies with blank text.
var ErrEmptyResponse = errors.New("model returned empty text")

// titlePattern matches the first Markdown heading terminated by a newline.
var titlePattern = regexp.MustCompile(`#+ (.*?)\n`)

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// Generator runs the article and post flows against one backend.
type Generator struct {
	backend     Backend
	maxRetries  int
	temperature float64
	maxTokens   int
	logger      *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Generator. A nil logger uses slog.Default().
func New(backend Backend, cfg types.AIConfig, logger *slog.Logger) (*Generator, error) {
	if backend == nil {
		return nil, errors.New("generation backend is required")
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must not be negative, got %d", cfg.MaxRetries)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		backend:     backend,
		maxRetries:  cfg.MaxRetries,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}, nil
}

// Backend returns the backend name.
func (g *Generator) Backend() string { return g.backend.Name() }

// Complete sends req through the backend, retrying failed calls up to the
// configured number of times, and returns the trimmed reply.
func (g *Generator) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			g.logger.Debug("retrying generation", "backend", g.backend.Name(), "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := g.backend.Complete(ctx, req)
		if err == nil {
			text = strings.TrimSpace(text)
			if text != "" {
				return text, nil
			}
			err = ErrEmptyResponse
		}
		lastErr = err
	}
	if g.maxRetries > 0 {
		return "", fmt.Errorf("after %d retries: %w", g.maxRetries, lastErr)
	}
	return "", lastErr
}

// Article generates a blog article with its summary, quotes, SEO metadata
// (when a keyword is given), readability score, and image suggestion.
func (g *Generator) Article(ctx context.Context, req types.ArticleRequest) (*types.Generation, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	p, err := prompt.Article(req)
	if err != nil {
		return nil, fmt.Errorf("rendering article prompt: %w", err)
	}

	g.logger.Info("generating article", "backend", g.backend.Name(), "template", req.Template, "tone", req.Tone, "audience", req.Audience)
	content, err := g.Complete(ctx, g.articleRequest(p))
	if err != nil {
		return nil, fmt.Errorf("generating article: %w", err)
	}

	gen := &types.Generation{
		ID:        g.newID(),
		Kind:      types.KindArticle,
		Topic:     req.Topic,
		Template:  req.Template,
		Tone:      req.Tone,
		Audience:  req.Audience,
		Keyword:   req.Keyword,
		Title:     ExtractTitle(content, DefaultArticleTitle),
		Content:   content,
		CreatedAt: g.now().UTC(),
	}

	gen.Summary = g.secondary(ctx, gen, "summary", func() (string, error) {
		return prompt.Summary(content)
	})
	gen.Quotes = g.secondary(ctx, gen, "quotes", func() (string, error) {
		return prompt.Quotes(content)
	})
	if req.Keyword != "" {
		gen.SEO = g.secondary(ctx, gen, "seo", func() (string, error) {
			return prompt.SEO(gen.Title, req.Keyword)
		})
	}

	gen.Readability = FleschKincaidGrade(content)
	gen.ImageSuggestion = ImageSuggestion(req.Keyword, req.Topic)

	return gen, nil
}

// Post generates a social-media post.
func (g *Generator) Post(ctx context.Context, req types.PostRequest) (*types.Generation, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	p, err := prompt.Post(req)
	if err != nil {
		return nil, fmt.Errorf("rendering post prompt: %w", err)
	}

	g.logger.Info("generating post", "backend", g.backend.Name(), "tone", req.Tone)
	temperature := prompt.PostTemperature
	content, err := g.Complete(ctx, Request{
		Prompt:      p,
		Temperature: &temperature,
		MaxTokens:   prompt.PostMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating post: %w", err)
	}

	return &types.Generation{
		ID:          g.newID(),
		Kind:        types.KindPost,
		Topic:       req.Topic,
		Tone:        req.Tone,
		Title:       ExtractTitle(content, DefaultPostTitle),
		Content:     content,
		Readability: FleschKincaidGrade(content),
		CreatedAt:   g.now().UTC(),
	}, nil
}

// Overrides replaces request fields when regenerating. Empty fields keep
// the stored value.
type Overrides struct {
	Template string `json:"template,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Audience string `json:"audience,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
}

// Regenerate runs the flow that produced prev again with its stored request
// and the given overrides, returning a new generation. Posts accept only a
// tone override.
func (g *Generator) Regenerate(ctx context.Context, prev *types.Generation, o Overrides) (*types.Generation, error) {
	switch prev.Kind {
	case types.KindArticle:
		req := prev.ArticleRequest()
		if o.Template != "" {
			req.Template = types.ArticleTemplate(o.Template)
		}
		if o.Tone != "" {
			req.Tone = types.Tone(o.Tone)
		}
		if o.Audience != "" {
			req.Audience = types.Audience(o.Audience)
		}
		if o.Keyword != "" {
			req.Keyword = o.Keyword
		}
		return g.Article(ctx, req)
	case types.KindPost:
		if o.Template != "" || o.Audience != "" || o.Keyword != "" {
			return nil, fmt.Errorf("%w: posts only accept a tone override", types.ErrInvalidRequest)
		}
		req := prev.PostRequest()
		if o.Tone != "" {
			req.Tone = types.Tone(o.Tone)
		}
		return g.Post(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", types.ErrInvalidRequest, prev.Kind)
	}
}

// secondary runs one best-effort call. On failure it records a warning on
// gen and returns "".
func (g *Generator) secondary(ctx context.Context, gen *types.Generation, what string, render func() (string, error)) string {
	p, err := render()
	if err == nil {
		var text string
		if text, err = g.Complete(ctx, g.articleRequest(p)); err == nil {
			return text
		}
	}
	gen.Warnings = append(gen.Warnings, fmt.Sprintf("generating %s: %v", what, err))
	g.logger.Warn("secondary generation failed", "part", what, "id", gen.ID, "error", err)
	return ""
}

func (g *Generator) articleRequest(p string) Request {
	req := Request{Prompt: p, MaxTokens: g.maxTokens}
	if g.temperature > 0 {
		t := g.temperature
		req.Temperature = &t
	}
	return req
}

// ExtractTitle returns the text of the first Markdown heading in content, or
// def when there is none.
func ExtractTitle(content, def string) string {
	m := titlePattern.FindStringSubmatch(content)
	if len(m) < 2 {
		return def
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return def
	}
	return title
}

// ImageSuggestion returns the royalty-free image hint for a keyword, falling
// back to the topic.
func ImageSuggestion(keyword, topic string) string {
	term := keyword
	if term == "" {
		term = topic
	}
	return "Suggested royalty-free image sources: Unsplash, Pexels (use keyword: " + term + ")"
}
