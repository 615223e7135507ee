package Reimbursement

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// DocumentBuilder is the rendering capability the kit assembler depends on.
// The production implementation renders PDF; tests substitute a recorder.
type DocumentBuilder interface {
	NewPage()
	Title(text string)
	Heading(text string)
	Text(text string)
	Bold(text string)
	Spacer(height float64)
	Table(header []string, widths []float64, rows [][]string)
	// SpaceLeft reports the vertical room remaining on the current page,
	// in the builder's unit.
	SpaceLeft() float64
	// Finalize closes the document and returns its bytes and page count.
	// Per-page footers are resolved here, once the total is known.
	Finalize() ([]byte, int, error)
}

const (
	pdfFooterHeight = 18.0
	pdfLineHeight   = 6.0
)

// PDFBuilder renders Letter-size pages with a "Página i de N" footer on
// every page. gofpdf substitutes the page total on output, which covers
// the second pass the footer contract requires.
type PDFBuilder struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func NewPDFBuilder() DocumentBuilder {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, pdfFooterHeight+2)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, tr("Generado por MenteSana · mentesana.cl"), "", 0, "L", false, 0, "")
		pdf.SetY(-15)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	return &PDFBuilder{pdf: pdf, tr: tr}
}

func (b *PDFBuilder) NewPage() {
	b.pdf.AddPage()
}

func (b *PDFBuilder) Title(text string) {
	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.CellFormat(0, 10, b.tr(text), "", 1, "C", false, 0, "")
	b.pdf.Ln(2)
}

func (b *PDFBuilder) Heading(text string) {
	b.pdf.SetFont("Helvetica", "B", 13)
	b.pdf.CellFormat(0, 8, b.tr(text), "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

func (b *PDFBuilder) Text(text string) {
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.MultiCell(0, pdfLineHeight, b.tr(text), "", "L", false)
}

func (b *PDFBuilder) Bold(text string) {
	b.pdf.SetFont("Helvetica", "B", 10)
	b.pdf.MultiCell(0, pdfLineHeight, b.tr(text), "", "L", false)
}

func (b *PDFBuilder) Spacer(height float64) {
	b.pdf.Ln(height)
}

func (b *PDFBuilder) Table(header []string, widths []float64, rows [][]string) {
	b.pdf.SetFont("Helvetica", "B", 9)
	b.pdf.SetFillColor(235, 235, 235)
	for i, h := range header {
		b.pdf.CellFormat(widths[i], 7, b.tr(h), "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(-1)

	b.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			b.pdf.CellFormat(widths[i], 7, b.tr(cell), "1", 0, "L", false, 0, "")
		}
		b.pdf.Ln(-1)
	}
	b.pdf.Ln(2)
}

func (b *PDFBuilder) SpaceLeft() float64 {
	_, pageHeight := b.pdf.GetPageSize()
	_, _, _, bottom := b.pdf.GetMargins()
	return pageHeight - bottom - pdfFooterHeight - b.pdf.GetY()
}

func (b *PDFBuilder) Finalize() ([]byte, int, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), b.pdf.PageCount(), nil
}
