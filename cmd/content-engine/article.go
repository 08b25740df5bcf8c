// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/pkg/types"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Generate a blog article",
	Long: fmt.Sprintf(`Article generates a blog article for a topic, then asks for a LinkedIn
summary, tweetable quotes, and (when --keyword is set) SEO title and meta
description suggestions. The readability grade is computed locally.

Templates: %s
Tones:     %s
Audiences: %s

The request can be read from a YAML brief (--brief) with the keys topic,
template, tone, audience, and keyword; flags override brief values. Use
--from to regenerate a stored article with a new tone or template.`,
		joinChoices(types.ArticleTemplates), joinChoices(types.ArticleTones), joinChoices(types.Audiences)),
	Args: cobra.NoArgs,
	RunE: runArticle,
}

func init() {
	articleCmd.Flags().String("topic", "", "blog topic or key points")
	articleCmd.Flags().String("template", "", "article template (default How-to)")
	articleCmd.Flags().String("tone", "", "writing tone (default Professional)")
	articleCmd.Flags().String("audience", "", "target audience (default HRs)")
	articleCmd.Flags().String("keyword", "", "primary SEO keyword")
	articleCmd.Flags().String("brief", "", "YAML file with the article request (- for stdin)")
	articleCmd.Flags().String("from", "", "regenerate the stored article with this id")
	addExportFlags(articleCmd)

	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator()
	if err != nil {
		return err
	}

	var g *types.Generation
	if from := stringFlag(cmd, "from"); from != "" {
		if cmd.Flags().Changed("topic") || cmd.Flags().Changed("brief") {
			return fmt.Errorf("--from cannot be combined with --topic or --brief")
		}
		g, err = regenerateFrom(cmd.Context(), gen, from, generate.Overrides{
			Template: stringFlag(cmd, "template"),
			Tone:     stringFlag(cmd, "tone"),
			Audience: stringFlag(cmd, "audience"),
			Keyword:  stringFlag(cmd, "keyword"),
		}, types.KindArticle)
	} else {
		var req types.ArticleRequest
		req, err = articleRequest(cmd)
		if err != nil {
			return err
		}
		g, err = gen.Article(cmd.Context(), req)
	}
	if err != nil {
		return err
	}
	return finish(cmd, g)
}

// articleRequest builds the request from --brief and the individual flags.
func articleRequest(cmd *cobra.Command) (types.ArticleRequest, error) {
	var req types.ArticleRequest
	if path := stringFlag(cmd, "brief"); path != "" {
		data, err := readInput(path)
		if err != nil {
			return req, fmt.Errorf("reading brief: %w", err)
		}
		if req, err = parseBrief(data); err != nil {
			return req, err
		}
	}

	if cmd.Flags().Changed("topic") {
		req.Topic = stringFlag(cmd, "topic")
	}
	if cmd.Flags().Changed("template") {
		req.Template = types.ArticleTemplate(stringFlag(cmd, "template"))
	}
	if cmd.Flags().Changed("tone") {
		req.Tone = types.Tone(stringFlag(cmd, "tone"))
	}
	if cmd.Flags().Changed("audience") {
		req.Audience = types.Audience(stringFlag(cmd, "audience"))
	}
	if cmd.Flags().Changed("keyword") {
		req.Keyword = stringFlag(cmd, "keyword")
	}
	return req, nil
}

// parseBrief decodes a YAML article brief, rejecting unknown keys.
func parseBrief(data []byte) (types.ArticleRequest, error) {
	var req types.ArticleRequest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return types.ArticleRequest{}, fmt.Errorf("parsing brief: %w", err)
	}
	return req, nil
}

func joinChoices[T ~string](choices []T) string {
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
