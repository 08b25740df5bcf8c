// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders the natural-language prompts sent to the
// text-generation backend. Each prompt is a fixed template with the user's
// form values interpolated verbatim.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/content-engine/pkg/types"
)

// PostTemperature and PostMaxTokens are the generation settings used for
// social-media posts.
const (
	PostTemperature = 0.7
	PostMaxTokens   = 500
)

var funcs = template.FuncMap{
	"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
}

var articleTmpl = template.Must(template.New("article").Funcs(funcs).Parse(`Create a blog outline for a {{lower .Template}} article on '{{.Topic}}'.
Target audience: {{.Audience}}.
Tone: {{.Tone}}.
Include:
- Blog title
- Introduction
- 3-5 main sections with subheadings
- Conclusion`))

var summaryTmpl = template.Must(template.New("summary").Parse(`Generate a concise LinkedIn post summary (TL;DR style, max 150 words) from the following blog content:
{{.Content}}`))

var quotesTmpl = template.Must(template.New("quotes").Parse(`Extract 3 tweetable quotes (max 280 characters each) from the following blog content:
{{.Content}}`))

// The title is accepted for symmetry with the other secondary prompts but the
// suggestion is driven by the keyword alone.
var seoTmpl = template.Must(template.New("seo").Parse(`Suggest an SEO-friendly title (up to 60 characters) and meta description (up to 160 characters) for a blog with the keyword '{{.Keyword}}'.`))

var postTmpl = template.Must(template.New("post").Parse(`Create a polished LinkedIn post about the topic: '{{.Topic}}' in a {{.Tone}} tone.
Keep it concise (under 300 words), include 3-5 relevant hashtags, and end with a call-to-action.`))

// Article renders the blog outline prompt.
func Article(req types.ArticleRequest) (string, error) {
	return render(articleTmpl, req)
}

// Summary renders the TL;DR summary prompt for generated content.
func Summary(content string) (string, error) {
	return render(summaryTmpl, struct{ Content string }{content})
}

// Quotes renders the tweetable-quotes prompt for generated content.
func Quotes(content string) (string, error) {
	return render(quotesTmpl, struct{ Content string }{content})
}

// SEO renders the SEO metadata prompt.
func SEO(title, keyword string) (string, error) {
	return render(seoTmpl, struct{ Title, Keyword string }{title, keyword})
}

// Post renders the social-media post prompt.
func Post(req types.PostRequest) (string, error) {
	return render(postTmpl, req)
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
