package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

// ExportRequest is a rendered document ready for conversion
type ExportRequest struct {
	DocumentType entity.DocumentTypeID
	Language     entity.Language
	Title        string
	Text         string
	Format       entity.ResultFormat
}

// FileName is {type}_{lang}_{YYYYMMDD_HHMMSS}{ext}
func FileName(docType entity.DocumentTypeID, lang entity.Language, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s%s", docType, lang, at.Format("20060102_150405"), ext)
}

type Exporter struct {
	folder  string
	factory *Factory
	now     func() time.Time
}

func NewExporter(folder string) *Exporter {
	return &Exporter{
		folder:  folder,
		factory: NewFactory(),
		now:     time.Now,
	}
}

// Build converts the document in memory
func (e *Exporter) Build(req *ExportRequest) (*entity.ExportedDocument, error) {
	f, err := e.factory.Create(req.Format, req.Language)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(req.Title, req.Text)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", req.Format, err)
	}

	return &entity.ExportedDocument{
		FileName:    FileName(req.DocumentType, req.Language, f.FileExtension(), e.now()),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// Export converts the document and writes it into the export folder
func (e *Exporter) Export(req *ExportRequest) (string, error) {
	doc, err := e.Build(req)
	if err != nil {
		return "", err
	}
	return e.Save(doc)
}

// Save writes an already built document into the export folder, creating it when missing
func (e *Exporter) Save(doc *entity.ExportedDocument) (string, error) {
	if err := os.MkdirAll(e.folder, 0o755); err != nil {
		return "", fmt.Errorf("create export folder: %w", err)
	}

	path := filepath.Join(e.folder, doc.FileName)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
