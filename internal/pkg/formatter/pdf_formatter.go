package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path, for running from the repo root
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
)

type PDFFormatter struct {
	pageSize PageSize
}

func NewPDFFormatter(pageSize PageSize) *PDFFormatter {
	return &PDFFormatter{pageSize: pageSize}
}

// resolveFontPath looks for DejaVuSans in the runtime layout, then the source layout
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

func (mf *PDFFormatter) Format(title, text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", string(mf.pageSize), "")
	pdf.AddPage()

	fontName := "Arial"
	// core fonts are cp1252, the translator keeps umlauts and the euro sign
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		tr = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for _, b := range splitBlocks(text) {
		if b.heading {
			pdf.SetFont(fontName, "B", 13)
			_, h := pdf.GetFontSize()
			pdf.MultiCell(0, h*1.4, tr(b.text), "", "", false)
			pdf.Ln(2)
			continue
		}
		pdf.SetFont(fontName, "", 11)
		_, h := pdf.GetFontSize()
		pdf.MultiCell(0, h*1.5, tr(b.text), "", "", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
