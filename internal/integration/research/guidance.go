package research

import (
	"fmt"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const itemsPerSection = 5

type section struct {
	heading  string
	items    []string
	fallback string
}

// FormatGuidance renders a research record as the text shown to the user
func FormatGuidance(r *entity.ResearchRecord) string {
	var b strings.Builder

	title := cases.Title(language.English).String(strings.ReplaceAll(string(r.DocumentType), "_", " "))
	fmt.Fprintf(&b, "🌍 **LOCALIZATION RESEARCH FOR %s - %s**\n", strings.ToUpper(r.Country), title)

	sections := []section{
		{"📋 **Legal Requirements:**", r.LegalRequirements, "No specific legal requirements found"},
		{"📄 **Template Structure:**", r.TemplateStructure, "Standard template structure recommended"},
		{"⚖️ **Key Clauses:**", r.KeyClauses, "Standard clauses recommended"},
		{"✅ **Compliance Notes:**", r.ComplianceNotes, "General compliance standards apply"},
	}
	for _, s := range sections {
		fmt.Fprintf(&b, "\n%s\n", s.heading)
		if len(s.items) == 0 {
			fmt.Fprintf(&b, "• %s\n", s.fallback)
			continue
		}
		for i, it := range s.items {
			if i == itemsPerSection {
				break
			}
			fmt.Fprintf(&b, "• %s\n", it)
		}
	}

	b.WriteString("\n📚 **Sources:**\n")
	for i, src := range r.Sources {
		if i == sourcesPerHit {
			break
		}
		fmt.Fprintf(&b, "• %s: %s\n", src.Title, src.URL)
	}

	fmt.Fprintf(&b, "\n⏰ **Research completed:** %s", r.LastUpdated.Format(timestampLayout))

	return b.String()
}
