package renderer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer fills document templates with collected answers
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(entries))}
	for _, e := range entries {
		name := e.Name()
		data, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}

		tmpl, err := template.New(name).Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".tmpl")] = tmpl
	}

	return r, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func templateKey(docType entity.DocumentTypeID, lang entity.Language) string {
	return string(docType) + "_" + strings.ToLower(string(lang))
}

// Has reports whether a template exists for the type in any language
func (r *Renderer) Has(docType entity.DocumentTypeID) bool {
	_, ok := r.templates[templateKey(docType, entity.DefaultLanguage)]
	return ok
}

// Render returns ErrTemplateNotFound for unknown types and ErrRenderFailed
// when a referenced answer is missing.
func (r *Renderer) Render(docType entity.DocumentTypeID, fields []entity.Field, lang entity.Language) (string, error) {
	lang = lang.OrDefault()

	tmpl, ok := r.templates[templateKey(docType, lang)]
	if !ok {
		tmpl, ok = r.templates[templateKey(docType, entity.DefaultLanguage)]
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", entity.ErrTemplateNotFound, docType)
	}

	data := newDocumentData(fields, lang)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrRenderFailed, err)
	}

	return strings.TrimSpace(buf.String()) + "\n", nil
}

// RenderText never fails, problems are reported inside the returned text
func (r *Renderer) RenderText(docType entity.DocumentTypeID, fields []entity.Field, lang entity.Language) string {
	doc, err := r.Render(docType, fields, lang)
	if err == nil {
		return doc
	}
	return ErrorText(docType, err)
}

// ErrorText is the in-band replacement shown instead of a document
func ErrorText(docType entity.DocumentTypeID, err error) string {
	if errors.Is(err, entity.ErrTemplateNotFound) {
		return fmt.Sprintf("Template not found for document type: %s", docType)
	}
	return fmt.Sprintf("Error generating document: %v", err)
}
