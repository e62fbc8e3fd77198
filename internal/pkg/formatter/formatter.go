package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type Formatter interface {
	Format(title, text string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the formatter for format, PDF page size follows the language
func (f *Factory) Create(format entity.ResultFormat, lang entity.Language) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		if lang == entity.LanguageDE {
			return NewPDFFormatter(PageA4), nil
		}
		return NewPDFFormatter(PageLetter), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidFormat, format)
	}
}

type block struct {
	text    string
	heading bool
}

// splitBlocks cuts text into blank-line separated paragraphs.
// Paragraphs starting with a section number 1. to 9. are headings.
func splitBlocks(text string) []block {
	var out []block
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, block{text: p, heading: isSectionHeading(p)})
	}
	return out
}

func isSectionHeading(p string) bool {
	return len(p) >= 2 && p[0] >= '1' && p[0] <= '9' && p[1] == '.'
}
