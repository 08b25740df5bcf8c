// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"

	"baliance.com/gooxml/document"
)

// DOCX exports documents as Word files: a Title-styled heading followed by
// one paragraph per body line.
type DOCX struct{}

// Export writes doc as DOCX to w.
func (DOCX) Export(w io.Writer, doc Document) error {
	d := document.New()

	if doc.Title != "" {
		title := d.AddParagraph()
		title.SetStyle("Title")
		title.AddRun().AddText(doc.Title)
	}

	for _, line := range splitLines(doc.Body) {
		d.AddParagraph().AddRun().AddText(line)
	}

	return d.Save(w)
}
