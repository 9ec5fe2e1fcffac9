package report

import (
	"bytes"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// DefaultTitle is printed centred at the top of the first page.
const DefaultTitle = "Relatório de Empréstimos de Jogos"

const (
	fontFamily    = "Helvetica"
	titleFontSize = 20.0
	bodyFontSize  = 12.0
)

// Generator draws loan reports. New sets the default title.
type Generator struct {
	// Title is the heading on the first page.
	Title string
	// Compress deflates page streams. Tests turn it off to search the output.
	Compress bool
}

// New returns a Generator with the default title and compression on.
func New() *Generator {
	return &Generator{Title: DefaultTitle, Compress: true}
}

// Render writes the PDF for rows to w. The document is built completely in
// memory before the first byte is written, so a failure never leaves a
// truncated document behind.
func (g *Generator) Render(w io.Writer, rows []domain.Emprestimo) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(g.Compress)
	pdf.SetTitle(g.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*Margin

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.SetXY(Margin, Margin)
	pdf.CellFormat(contentW, titleFontSize+4, tr(g.Title), "", 0, "C", false, 0, "")

	pdf.SetFont(fontFamily, "B", bodyFontSize)
	drawRow(pdf, tr, HeaderY, Headers)
	pdf.Line(Margin, HeaderY+15, RuleRightX, HeaderY+15)

	pdf.SetFont(fontFamily, "", bodyFontSize)
	page := 1
	for _, p := range Plan(rows).Rows {
		for page < p.Page {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", bodyFontSize)
			page++
		}
		drawRow(pdf, tr, p.Y, p.Cells)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, y float64, cells [5]string) {
	for i, text := range cells {
		right := RuleRightX
		if i+1 < len(ColumnX) {
			right = ColumnX[i+1]
		}
		width := right - ColumnX[i]
		pdf.SetXY(ColumnX[i], y)
		pdf.CellFormat(width, bodyFontSize+2, fit(pdf, tr(text), width-4), "", 0, "L", false, 0, "")
	}
}

// fit shortens s with a trailing "..." until it is no wider than w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
