// Package pdf renders simple text documents (warning letters, review
// reports) to PDF.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

type Field struct {
	Label string
	Value string
}

type Section struct {
	Heading string
	Fields  []Field
	Body    []string
}

type Document struct {
	Title    string
	Subtitle string
	Sections []Section
	Footer   string
}

func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.Title))
	pdf.Ln(10)
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, tr(doc.Subtitle))
		pdf.Ln(10)
	}

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.Cell(0, 9, tr(section.Heading))
			pdf.Ln(9)
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, f := range section.Fields {
			pdf.Cell(0, 7, tr(fmt.Sprintf("%s: %s", f.Label, f.Value)))
			pdf.Ln(7)
		}
		for _, para := range section.Body {
			pdf.MultiCell(0, 6, tr(para), "", "L", false)
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	if doc.Footer != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(doc.Footer), "T", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
