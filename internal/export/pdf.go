// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points for US Letter.
const (
	pageHeight = 792.0

	// Line layout positions are measured from the bottom of the page.
	linesTop    = 750.0
	linesBottom = 50.0
	linesLeft   = 50.0
	linesStep   = 15.0
	linesMaxLen = 100

	flowMargin  = 72.0
	flowSpacer  = 12.0
	flowLineH   = 14.0
	flowTitleH  = 24.0
	bodyFont    = "Helvetica"
	bodySize    = 12.0
	titleSize   = 20.0
	creatorName = "content-engine"
)

// PDF exports documents as Letter-sized PDF files using the core Helvetica
// font. Text is translated to the cp1252 code page; characters outside it
// are replaced.
type PDF struct {
	Compress bool
}

// Export writes doc as PDF to w.
func (p *PDF) Export(w io.Writer, doc Document) error {
	return p.render(doc).Output(w)
}

func (p *PDF) render(doc Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(p.Compress)
	pdf.SetCreator(creatorName, false)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := splitLines(doc.Body)
	if doc.Layout == LayoutLines {
		drawLines(pdf, tr, lines)
	} else {
		drawFlow(pdf, tr, doc.Title, lines)
	}
	return pdf
}

// drawLines places each line at a fixed step down the page, starting a new
// page when the cursor drops below the bottom margin.
func drawLines(pdf *fpdf.Fpdf, tr func(string) string, lines []string) {
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(bodyFont, "", bodySize)
	pdf.AddPage()

	y := linesTop
	for _, line := range lines {
		if y < linesBottom {
			pdf.AddPage()
			y = linesTop
		}
		pdf.Text(linesLeft, pageHeight-y, tr(truncate(line, linesMaxLen)))
		y -= linesStep
	}
}

// drawFlow renders a bold title, then each line as a wrapped paragraph
// followed by a spacer.
func drawFlow(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []string) {
	pdf.SetMargins(flowMargin, flowMargin, flowMargin)
	pdf.SetAutoPageBreak(true, flowMargin)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont(bodyFont, "B", titleSize)
		pdf.MultiCell(0, flowTitleH, tr(title), "", "C", false)
		pdf.Ln(flowSpacer)
	}

	pdf.SetFont(bodyFont, "", bodySize)
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			pdf.MultiCell(0, flowLineH, tr(line), "", "L", false)
		}
		pdf.Ln(flowSpacer)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
