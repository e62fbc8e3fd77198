package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "LEASE\n\n1. PARTIES\n\nLandlord: Anna Schmidt\nTenant: Tom Berg\n\n   \n\n2. RENT\n\nMonthly rent: 1.200,00 €"

func TestSplitBlocks(t *testing.T) {
	blocks := splitBlocks(sample)

	require.Len(t, blocks, 5)
	assert.Equal(t, block{text: "LEASE"}, blocks[0])
	assert.Equal(t, block{text: "1. PARTIES", heading: true}, blocks[1])
	assert.False(t, blocks[2].heading)
	assert.True(t, blocks[3].heading)
	assert.False(t, blocks[4].heading)
}

func TestIsSectionHeading(t *testing.T) {
	assert.True(t, isSectionHeading("9. TERMINATION"))
	assert.False(t, isSectionHeading("10. SIGNATURES"))
	assert.False(t, isSectionHeading("1,200.00"))
	assert.False(t, isSectionHeading("1"))
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format("Residential Lease Agreement", sample)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "# Residential Lease Agreement\n")
	assert.Contains(t, s, "\n## 1. PARTIES\n")
	assert.Contains(t, s, "\nLandlord: Anna Schmidt\nTenant: Tom Berg\n")
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatDOCX, entity.FormatPDF} {
		fm, err := f.Create(format, entity.LanguageEN)
		require.NoError(t, err)
		assert.NotEmpty(t, fm.ContentType())
	}

	pdf, err := f.Create(entity.FormatPDF, entity.LanguageDE)
	require.NoError(t, err)
	assert.Equal(t, PageA4, pdf.(*PDFFormatter).pageSize)

	_, err = f.Create("odt", entity.LanguageEN)
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestPDFFormatter(t *testing.T) {
	pdf, err := NewPDFFormatter(PageLetter).Format("Vollmacht", sample)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 1, 15, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "nda_EN_20240115_140509.pdf", FileName(entity.DocumentNDA, entity.LanguageEN, ".pdf", at))
}

func TestExporter_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := NewExporter(dir)
	e.now = func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	path, err := e.Export(&ExportRequest{
		DocumentType: entity.DocumentResidentialLease,
		Language:     entity.LanguageDE,
		Title:        "Wohnungsmietvertrag",
		Text:         sample,
		Format:       entity.FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "residential_lease_DE_20240115_000000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Wohnungsmietvertrag")
}
