// Package report renders a calculation result to a one-page
// engineering report PDF. It is caller-side formatting: the engine
// hands over a result record and never sees the document.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"Frostline/internal/compliance"
)

// Line is one labeled value on the report.
type Line struct {
	Label string
	Value string
}

// Section groups lines under a heading (inputs, results, ...).
type Section struct {
	Heading string
	Lines   []Line
}

// Doc is the report content.
type Doc struct {
	Title    string
	Project  string
	Author   string
	Sections []Section
	// Body is preformatted text (the CLI puts the result JSON here),
	// rendered monospace after the sections.
	Body  string
	Flags compliance.Flags
	Notes string
}

// Generate writes the PDF to w.
func Generate(w io.Writer, doc Doc) error {
	if doc.Title == "" {
		doc.Title = "Engineering Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	for _, sec := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, sec.Heading)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, ln := range sec.Lines {
			pdf.Cell(80, 5, ln.Label)
			pdf.Cell(0, 5, ln.Value)
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	if doc.Body != "" {
		pdf.SetFont("Courier", "", 8)
		pdf.MultiCell(0, 4, doc.Body, "", "L", false)
		pdf.Ln(4)
	}

	if len(doc.Flags) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Compliance flags")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, fl := range doc.Flags {
			pdf.Cell(22, 5, string(fl.Severity))
			pdf.Cell(48, 5, fl.Ref)
			pdf.MultiCell(0, 5, fl.Message, "", "L", false)
		}
		pdf.Ln(4)
	}

	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, doc.Notes, "", "L", false)
	}
	return pdf.Output(w)
}
