// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultHTMLTitle is the page title used when a document has none.
const DefaultHTMLTitle = "Blog Post"

// Raw HTML in the body is passed through unchanged.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML exports documents as a standalone HTML page with the Markdown body
// rendered to HTML.
type HTML struct{}

// Export writes doc as HTML to w.
func (HTML) Export(w io.Writer, doc Document) error {
	body, err := MarkdownToHTML(doc.Body)
	if err != nil {
		return err
	}
	title := doc.Title
	if title == "" {
		title = DefaultHTMLTitle
	}
	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
}

// MarkdownToHTML converts GitHub-flavored Markdown to an HTML fragment.
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
