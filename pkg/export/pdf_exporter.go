package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RGB is a colour used to tint table headers, footers and section titles.
type RGB struct {
	R, G, B int
}

// Table is one titled grid of the timesheet document.
type Table struct {
	Title       string
	TitleColor  RGB
	HeaderFill  RGB
	FooterFill  RGB
	Headers     []string
	Rows        [][]string
	FooterLabel string
	FooterValue string
}

// SummaryLine is a label/value pair printed in the closing summary block.
type SummaryLine struct {
	Label string
	Value string
}

// TimesheetDocument describes a monthly hours report.
type TimesheetDocument struct {
	Title        string
	Subtitles    []string
	Tables       []Table
	SummaryTitle string
	Summary      []SummaryLine
	Highlight    SummaryLine
}

const (
	leftMargin      = 14.0
	rowHeight       = 7.0
	tableGap        = 15.0
	summaryGap      = 20.0
	summaryHeight   = 40.0
	summaryWidth    = 180.0
	tableBreakY     = 200.0
	summaryBreakY   = 250.0
	pageTopAfterAdd = 20.0
)

var columnWidths = []float64{20, 25, 45, 50, 42}

// PDFExporter renders timesheet documents with gofpdf core fonts.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws the title block, every table and the summary block.
func (e *PDFExporter) Render(doc TimesheetDocument) ([]byte, error) {
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("pdf requires at least one table")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, 15, leftMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(leftMargin, 20, tr(doc.Title))

	pdf.SetFont("Helvetica", "", 12)
	y := 30.0
	for _, line := range doc.Subtitles {
		pdf.Text(leftMargin, y, tr(line))
		y += 8
	}

	y += 4
	for i, table := range doc.Tables {
		if i > 0 {
			y = pdf.GetY()
			if y > tableBreakY {
				pdf.AddPage()
				y = pageTopAfterAdd
			} else {
				y += tableGap
			}
		}
		drawTable(pdf, tr, table, y)
	}

	y = pdf.GetY() + summaryGap
	if y > summaryBreakY {
		pdf.AddPage()
		y = pageTopAfterAdd
	}
	drawSummary(pdf, tr, doc, y)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, table Table, y float64) {
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(table.TitleColor.R, table.TitleColor.G, table.TitleColor.B)
	pdf.Text(leftMargin, y, tr(table.Title))

	pdf.SetY(y + 5)
	pdf.SetDrawColor(200, 200, 200)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(table.HeaderFill.R, table.HeaderFill.G, table.HeaderFill.B)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range table.Headers {
		pdf.CellFormat(width(i), rowHeight+1, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range table.Rows {
		for i, value := range row {
			pdf.CellFormat(width(i), rowHeight, tr(value), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(table.FooterFill.R, table.FooterFill.G, table.FooterFill.B)
	labelWidth := 0.0
	for i := 0; i < len(table.Headers)-1; i++ {
		labelWidth += width(i)
	}
	pdf.CellFormat(labelWidth, rowHeight, tr(table.FooterLabel), "1", 0, "R", true, 0, "")
	pdf.CellFormat(width(len(table.Headers)-1), rowHeight, tr(table.FooterValue), "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
}

func drawSummary(pdf *gofpdf.Fpdf, tr func(string) string, doc TimesheetDocument, y float64) {
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(203, 213, 225)
	pdf.Rect(leftMargin, y, summaryWidth, summaryHeight, "FD")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(15, 23, 42)
	pdf.Text(leftMargin+6, y+12, tr(doc.SummaryTitle))

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(51, 65, 85)
	lineY := y + 22
	for _, line := range doc.Summary {
		pdf.Text(leftMargin+6, lineY, tr(fmt.Sprintf("%s: %s", line.Label, line.Value)))
		lineY += 8
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(120, y+25, tr(fmt.Sprintf("%s: %s", doc.Highlight.Label, doc.Highlight.Value)))
}

func width(col int) float64 {
	if col < len(columnWidths) {
		return columnWidths[col]
	}
	return columnWidths[len(columnWidths)-1]
}
