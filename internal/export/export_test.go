// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/content-engine/pkg/types"
)

const sampleBody = "Intro line one\n\nSecond paragraph here\nClosing thoughts"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{".pdf", FormatPDF, false},
		{"doc", FormatDOCX, false},
		{"docx", FormatDOCX, false},
		{"html", FormatHTML, false},
		{" htm ", FormatHTML, false},
		{"rtf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormats_Dedup(t *testing.T) {
	got, err := ParseFormats([]string{"pdf", "doc", "docx", "PDF"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != FormatPDF || got[1] != FormatDOCX {
		t.Errorf("ParseFormats = %v, want [pdf docx]", got)
	}
}

func TestContentType(t *testing.T) {
	want := map[Format]string{
		FormatPDF:  "application/pdf",
		FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FormatHTML: "text/html",
	}
	for f, ct := range want {
		if got := ContentType(f); got != ct {
			t.Errorf("ContentType(%s) = %q, want %q", f, got, ct)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		f     Format
		want  string
	}{
		{"10 Ways to Scale Your Team!", FormatPDF, "10-ways-to-scale-your-team.pdf"},
		{"LinkedIn Post", FormatDOCX, "linkedin-post.docx"},
		{"", FormatHTML, "content.html"},
		{"***", FormatPDF, "content.pdf"},
	}
	for _, tt := range tests {
		if got := FileName(Document{Title: tt.title}, tt.f); got != tt.want {
			t.Errorf("FileName(%q, %s) = %q, want %q", tt.title, tt.f, got, tt.want)
		}
	}
}

func TestFromGeneration(t *testing.T) {
	article := FromGeneration(&types.Generation{Kind: types.KindArticle, Title: "T", Content: "body"})
	if article.Layout != LayoutFlow || article.Title != "T" || article.Body != "body" {
		t.Errorf("article document = %+v", article)
	}
	post := FromGeneration(&types.Generation{Kind: types.KindPost, Title: "LinkedIn Post"})
	if post.Layout != LayoutLines {
		t.Errorf("post layout = %q, want lines", post.Layout)
	}
}

// --- PDF ---

func TestPDF_FlowContainsLines(t *testing.T) {
	var buf bytes.Buffer
	p := &PDF{Compress: false}
	if err := p.Export(&buf, Document{Title: "My Title", Body: sampleBody, Layout: LayoutFlow}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("output does not start with %%PDF-: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"My Title", "Intro line one", "Second paragraph here", "Closing thoughts"} {
		if !strings.Contains(out, "("+want+")") {
			t.Errorf("PDF missing text %q", want)
		}
	}
}

func TestPDF_LinesTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	var buf bytes.Buffer
	p := &PDF{}
	if err := p.Export(&buf, Document{Body: "short\n" + long, Layout: LayoutLines}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "("+strings.Repeat("a", 100)+")") {
		t.Error("expected line truncated to 100 characters")
	}
	if strings.Contains(out, strings.Repeat("a", 101)) {
		t.Error("line longer than 100 characters was drawn")
	}
	if !strings.Contains(out, "(short)") {
		t.Error("PDF missing short line")
	}
}

func TestPDF_LinesPagination(t *testing.T) {
	tests := []struct {
		lines int
		pages int
	}{
		{1, 1},
		{47, 1},
		{48, 2},
		{100, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			body := make([]string, tt.lines)
			for i := range body {
				body[i] = fmt.Sprintf("line %d", i)
			}
			p := &PDF{}
			pdf := p.render(Document{Body: strings.Join(body, "\n"), Layout: LayoutLines})
			if err := pdf.Error(); err != nil {
				t.Fatal(err)
			}
			if got := pdf.PageCount(); got != tt.pages {
				t.Errorf("PageCount = %d, want %d", got, tt.pages)
			}
		})
	}
}

func TestPDF_NonLatinText(t *testing.T) {
	var buf bytes.Buffer
	p := &PDF{Compress: true}
	err := p.Export(&buf, Document{Title: "Café “quotes”", Body: "emoji 🚀 and naïve", Layout: LayoutFlow})
	if err != nil {
		t.Fatalf("export with non-Latin text: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty PDF output")
	}
}

// --- DOCX ---

func readDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestDOCX_ContainsLines(t *testing.T) {
	var buf bytes.Buffer
	if err := (DOCX{}).Export(&buf, Document{Title: "My Title", Body: sampleBody}); err != nil {
		t.Fatal(err)
	}
	xml := readDocumentXML(t, buf.Bytes())
	for _, want := range []string{"My Title", "Intro line one", "Second paragraph here", "Closing thoughts"} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
	if !strings.Contains(xml, `w:val="Title"`) {
		t.Error("title paragraph should use the Title style")
	}
}

// --- HTML ---

func TestHTML_Page(t *testing.T) {
	var buf bytes.Buffer
	body := "# Heading\n\nSome **bold** text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	if err := (HTML{}).Export(&buf, Document{Body: body}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	checks := []string{
		"<!DOCTYPE html>",
		"<title>Blog Post</title>",
		"<h1>Heading</h1>",
		"<strong>bold</strong>",
		"<table>",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTML_RawHTMLPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	if err := (HTML{}).Export(&buf, Document{Body: "Intro\n\n<div>Note</div>\n"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<div>Note</div>") {
		t.Errorf("raw HTML dropped: %s", out)
	}
	if strings.Contains(out, "raw HTML omitted") {
		t.Errorf("raw HTML replaced by placeholder: %s", out)
	}
}

func TestHTML_TitleEscaped(t *testing.T) {
	var buf bytes.Buffer
	if err := (HTML{}).Export(&buf, Document{Title: "A <b> & C", Body: "x"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<title>A &lt;b&gt; &amp; C</title>") {
		t.Errorf("title not escaped: %s", buf.String())
	}
}

// --- batch ---

func TestExportFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	doc := Document{Title: "Scaling Teams", Body: sampleBody, Layout: LayoutFlow}

	var log bytes.Buffer
	result := ExportFiles(doc, Formats, DefaultOptions(), dir, &log)

	if result.Written != 3 || result.HasFailures() {
		t.Fatalf("result = %+v, want 3 written", result)
	}
	for _, name := range []string{"scaling-teams.pdf", "scaling-teams.docx", "scaling-teams.html"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	if !strings.Contains(log.String(), "Export summary: 3 written, 0 failed (total: 3)") {
		t.Errorf("log missing summary: %s", log.String())
	}
}

func TestExportFiles_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	result := ExportFiles(Document{Body: "x"}, []Format{FormatHTML, "rtf"}, Options{}, dir, &log)

	if result.Written != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 written 1 failed", result)
	}
	if result.Total() != 2 {
		t.Errorf("total = %d, want 2", result.Total())
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Error("log should report the failed format")
	}
}
