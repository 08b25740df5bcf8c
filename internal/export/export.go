// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders generated content as PDF, DOCX, or HTML documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Format names an export file format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// Formats lists every supported format in export order.
var Formats = []Format{FormatPDF, FormatDOCX, FormatHTML}

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// Layout selects how the body is placed on a PDF page.
type Layout string

const (
	// LayoutFlow renders the title followed by one wrapped paragraph per line.
	LayoutFlow Layout = "flow"
	// LayoutLines draws each line at a fixed height, truncating long lines.
	LayoutLines Layout = "lines"
)

// Document is the exporter input.
type Document struct {
	Title  string
	Body   string
	Layout Layout
}

// FromGeneration builds a Document from a generation. Articles use the flow
// layout; posts use the line layout.
func FromGeneration(g *types.Generation) Document {
	layout := LayoutFlow
	if g.Kind == types.KindPost {
		layout = LayoutLines
	}
	return Document{Title: g.Title, Body: g.Content, Layout: layout}
}

// Exporter writes a document in one format.
type Exporter interface {
	Export(w io.Writer, doc Document) error
}

// Options configures exporters.
type Options struct {
	// CompressPDF enables stream compression in PDF output.
	CompressPDF bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{CompressPDF: true}
}

// ForFormat returns the exporter for f.
func ForFormat(f Format, opts Options) (Exporter, error) {
	switch f {
	case FormatPDF:
		return &PDF{Compress: opts.CompressPDF}, nil
	case FormatDOCX:
		return DOCX{}, nil
	case FormatHTML:
		return HTML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// ParseFormat maps a user-supplied name or extension to a Format. Matching
// is case-insensitive and ignores a leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "pdf":
		return FormatPDF, nil
	case "doc", "docx", "word":
		return FormatDOCX, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (use pdf, docx, or html)", ErrUnknownFormat, s)
	}
}

// ParseFormats parses a list of names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ContentType returns the MIME type served for f.
func ContentType(f Format) string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatHTML:
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns a file name for doc in format f: the slugged title plus
// the format extension, or "content" when the title has no usable characters.
func FileName(doc Document, f Format) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(doc.Title), "-"), "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	if slug == "" {
		slug = "content"
	}
	return slug + "." + string(f)
}

// BatchResult holds the outcome of exporting one document to several files.
type BatchResult struct {
	Written int
	Failed  int
	Paths   []string
}

// Total returns the number of formats attempted.
func (r BatchResult) Total() int {
	return r.Written + r.Failed
}

// HasFailures reports whether any format failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExportFile writes doc in format f to dir and returns the file path. A
// partially written file is removed on failure.
func ExportFile(doc Document, f Format, opts Options, dir string) (string, error) {
	exp, err := ForFormat(f, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(doc, f))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := exp.Export(out, doc); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("exporting %s: %w", f, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// ExportFiles writes doc in every format to dir, printing per-file status to
// w and returning a summary.
func ExportFiles(doc Document, formats []Format, opts Options, dir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, f := range formats {
		path, err := ExportFile(doc, f, opts, dir)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", f, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "exported: %s\n", path)
		result.Written++
		result.Paths = append(result.Paths, path)
	}
	fmt.Fprintf(w, "\nExport summary: %d written, %d failed (total: %d)\n",
		result.Written, result.Failed, result.Total())
	return result
}

// splitLines splits body on newlines, dropping carriage returns.
func splitLines(body string) []string {
	return strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
}
