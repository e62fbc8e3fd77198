package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

// Catalog is the read-only registry of supported document types
type Catalog struct {
	types []entity.DocumentType
	index map[entity.DocumentTypeID]int
}

type catalogFile struct {
	DocumentTypes []entity.DocumentType `yaml:"document_types"`
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// MustDefault panics if the embedded catalog is broken
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog override from path. An empty path or a missing file
// yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: catalog file is empty: %s", entity.ErrInvalidCatalog, path)
	}

	return Parse(data)
}

// Parse decodes and validates YAML catalog data
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", entity.ErrInvalidCatalog, err)
	}

	if len(file.DocumentTypes) == 0 {
		return nil, fmt.Errorf("%w: no document types", entity.ErrInvalidCatalog)
	}

	c := &Catalog{
		types: file.DocumentTypes,
		index: make(map[entity.DocumentTypeID]int, len(file.DocumentTypes)),
	}

	for i := range c.types {
		dt := &c.types[i]
		if dt.ID == "" {
			return nil, fmt.Errorf("%w: document type #%d has no id", entity.ErrInvalidCatalog, i)
		}
		if _, dup := c.index[dt.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate document type %s", entity.ErrInvalidCatalog, dt.ID)
		}
		if dt.Name.In(entity.DefaultLanguage) == "" {
			return nil, fmt.Errorf("%w: %s has no display name", entity.ErrInvalidCatalog, dt.ID)
		}

		seen := make(map[string]struct{}, len(dt.Questions))
		for j := range dt.Questions {
			q := &dt.Questions[j]
			if q.ID == "" {
				return nil, fmt.Errorf("%w: %s question #%d has no id", entity.ErrInvalidCatalog, dt.ID, j)
			}
			if _, dup := seen[q.ID]; dup {
				return nil, fmt.Errorf("%w: %s has duplicate question %s", entity.ErrInvalidCatalog, dt.ID, q.ID)
			}
			seen[q.ID] = struct{}{}

			if !q.Kind.IsValid() {
				return nil, fmt.Errorf("%w: %s.%s has unknown kind %q", entity.ErrInvalidCatalog, dt.ID, q.ID, q.Kind)
			}
			if q.Prompt.In(entity.DefaultLanguage) == "" {
				return nil, fmt.Errorf("%w: %s.%s has no prompt", entity.ErrInvalidCatalog, dt.ID, q.ID)
			}
			// every catalog question must be answered
			q.Required = true
		}

		c.index[dt.ID] = i
	}

	return c, nil
}

// Types returns the document types in classification order
func (c *Catalog) Types() []entity.DocumentType {
	out := make([]entity.DocumentType, len(c.types))
	copy(out, c.types)
	return out
}

func (c *Catalog) Lookup(id entity.DocumentTypeID) (*entity.DocumentType, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	dt := c.types[i]
	return &dt, true
}

// Questions returns the ordered question list of a type
func (c *Catalog) Questions(id entity.DocumentTypeID) []entity.Question {
	dt, ok := c.Lookup(id)
	if !ok {
		return nil
	}
	return dt.Questions
}

// DisplayName falls back to the raw id for unknown types
func (c *Catalog) DisplayName(id entity.DocumentTypeID, lang entity.Language) string {
	dt, ok := c.Lookup(id)
	if !ok {
		return string(id)
	}
	return dt.Name.In(lang)
}

// Title is the heading used for exported files
func (c *Catalog) Title(id entity.DocumentTypeID, lang entity.Language) string {
	dt, ok := c.Lookup(id)
	if !ok {
		return string(id)
	}
	if t := dt.Title.In(lang); t != "" {
		return t
	}
	return dt.Name.In(lang)
}

// Summaries lists every type for model context
func (c *Catalog) Summaries(lang entity.Language) []entity.DocumentTypeSummary {
	out := make([]entity.DocumentTypeSummary, 0, len(c.types))
	for i := range c.types {
		out = append(out, c.types[i].Summary(lang))
	}
	return out
}
