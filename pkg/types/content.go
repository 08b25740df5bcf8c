// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for content-engine: the
// enumerated form choices, generation requests, the Generation record, and
// configuration.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRequest marks validation failures of user input.
var ErrInvalidRequest = errors.New("invalid request")

// ContentKind distinguishes the two generation flows.
type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindPost    ContentKind = "post"
)

// ArticleTemplate selects the structure of a blog article.
type ArticleTemplate string

const (
	TemplateHowTo     ArticleTemplate = "How-to"
	TemplateListicle  ArticleTemplate = "Listicle"
	TemplateOpinion   ArticleTemplate = "Opinion"
	TemplateCaseStudy ArticleTemplate = "Case Study"
)

// ArticleTemplates lists the accepted templates in display order.
var ArticleTemplates = []ArticleTemplate{TemplateHowTo, TemplateListicle, TemplateOpinion, TemplateCaseStudy}

// Tone is the voice requested from the model.
type Tone string

const (
	ToneProfessional  Tone = "Professional"
	ToneFriendly      Tone = "Friendly"
	ToneCasual        Tone = "Casual"
	ToneWitty         Tone = "Witty"
	ToneTechnical     Tone = "Technical"
	ToneInspirational Tone = "Inspirational"
	ToneHumorous      Tone = "Humorous"
)

// ArticleTones and PostTones list the tones each flow offers.
var (
	ArticleTones = []Tone{ToneProfessional, ToneFriendly, ToneCasual, ToneWitty, ToneTechnical}
	PostTones    = []Tone{ToneProfessional, ToneCasual, ToneInspirational, ToneHumorous}
)

// Audience is the target readership of an article.
type Audience string

const (
	AudienceHRs          Audience = "HRs"
	AudienceTechFounders Audience = "Tech Founders"
	AudienceMarketers    Audience = "Marketers"
	AudienceFreshers     Audience = "Freshers"
	AudienceGeneral      Audience = "General"
)

// Audiences lists the accepted audiences in display order.
var Audiences = []Audience{AudienceHRs, AudienceTechFounders, AudienceMarketers, AudienceFreshers, AudienceGeneral}

// ParseArticleTemplate returns the canonical template matching s, ignoring case.
func ParseArticleTemplate(s string) (ArticleTemplate, error) {
	return parseChoice(s, "template", ArticleTemplates)
}

// ParseArticleTone returns the canonical article tone matching s.
func ParseArticleTone(s string) (Tone, error) {
	return parseChoice(s, "article tone", ArticleTones)
}

// ParsePostTone returns the canonical post tone matching s.
func ParsePostTone(s string) (Tone, error) {
	return parseChoice(s, "post tone", PostTones)
}

// ParseAudience returns the canonical audience matching s.
func ParseAudience(s string) (Audience, error) {
	return parseChoice(s, "audience", Audiences)
}

func parseChoice[T ~string](s, what string, choices []T) (T, error) {
	want := strings.TrimSpace(s)
	for _, c := range choices {
		if strings.EqualFold(string(c), want) {
			return c, nil
		}
	}
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = string(c)
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q (accepted: %s)", ErrInvalidRequest, what, s, strings.Join(names, ", "))
}

// ArticleRequest holds the form input for a blog article.
type ArticleRequest struct {
	// Topic is the blog topic or key points. Required.
	Topic string `json:"topic" yaml:"topic"`

	Template ArticleTemplate `json:"template" yaml:"template"`
	Tone     Tone            `json:"tone" yaml:"tone"`
	Audience Audience        `json:"audience" yaml:"audience"`

	// Keyword is the optional primary SEO keyword. SEO suggestions are only
	// requested when it is set.
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// Normalize validates the request and rewrites enumerations to their
// canonical spelling. Empty enumerations take the first accepted value.
func (r *ArticleRequest) Normalize() error {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	var err error
	if r.Template, err = parseOrDefault(string(r.Template), ArticleTemplates[0], ParseArticleTemplate); err != nil {
		return err
	}
	if r.Tone, err = parseOrDefault(string(r.Tone), ArticleTones[0], ParseArticleTone); err != nil {
		return err
	}
	if r.Audience, err = parseOrDefault(string(r.Audience), Audiences[0], ParseAudience); err != nil {
		return err
	}
	r.Keyword = strings.TrimSpace(r.Keyword)
	return nil
}

// PostRequest holds the form input for a social-media post.
type PostRequest struct {
	// Topic is the post topic. Required.
	Topic string `json:"topic" yaml:"topic"`

	Tone Tone `json:"tone" yaml:"tone"`
}

// Normalize validates the request and canonicalizes the tone.
func (r *PostRequest) Normalize() error {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	var err error
	r.Tone, err = parseOrDefault(string(r.Tone), PostTones[0], ParsePostTone)
	return err
}

func parseOrDefault[T ~string](s string, def T, parse func(string) (T, error)) (T, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return parse(s)
}

// Generation is one generated piece of content with everything derived from it.
type Generation struct {
	// ID is a UUID assigned when the content is generated.
	ID string `json:"id" yaml:"id"`

	Kind ContentKind `json:"kind" yaml:"kind"`

	// Request fields, kept so a generation can be regenerated with a new
	// tone or template.
	Topic    string          `json:"topic" yaml:"topic"`
	Template ArticleTemplate `json:"template,omitempty" yaml:"template,omitempty"`
	Tone     Tone            `json:"tone" yaml:"tone"`
	Audience Audience        `json:"audience,omitempty" yaml:"audience,omitempty"`
	Keyword  string          `json:"keyword,omitempty" yaml:"keyword,omitempty"`

	// Title is the first Markdown heading of Content, or a default.
	Title string `json:"title" yaml:"title"`

	// Content is the text returned by the model.
	Content string `json:"content" yaml:"content"`

	// Secondary outputs. Empty when not requested or when the call failed.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Quotes  string `json:"quotes,omitempty" yaml:"quotes,omitempty"`
	SEO     string `json:"seo,omitempty" yaml:"seo,omitempty"`

	// Readability is the Flesch-Kincaid grade level of Content.
	Readability float64 `json:"readability" yaml:"readability"`

	ImageSuggestion string `json:"image_suggestion,omitempty" yaml:"image_suggestion,omitempty"`

	// Warnings records the messages of secondary calls that failed.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ArticleRequest returns the request that produced an article generation.
func (g *Generation) ArticleRequest() ArticleRequest {
	return ArticleRequest{
		Topic:    g.Topic,
		Template: g.Template,
		Tone:     g.Tone,
		Audience: g.Audience,
		Keyword:  g.Keyword,
	}
}

// PostRequest returns the request that produced a post generation.
func (g *Generation) PostRequest() PostRequest {
	return PostRequest{Topic: g.Topic, Tone: g.Tone}
}
