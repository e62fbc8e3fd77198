package research

import (
	"regexp"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

const (
	minSentenceLen = 20
	maxFindings    = 10
	sourcesPerHit  = 3
	snippetLen     = 200
)

var indicators = map[aspect][]string{
	aspectLegalRequirements: {
		"required", "mandatory", "must include", "shall contain",
		"legal requirement", "obligatory", "essential", "necessary",
	},
	aspectTemplateStructure: {
		"section", "clause", "paragraph", "article", "part",
		"structure", "format", "template", "outline", "layout",
	},
	aspectKeyClauses: {
		"clause", "provision", "term", "condition", "stipulation",
		"agreement", "obligation", "right", "duty", "liability",
	},
	aspectCompliance: {
		"compliance", "regulation", "law", "statute", "code",
		"legal standard", "regulatory", "statutory", "legislation",
	},
}

var sentenceSplit = regexp.MustCompile(`[.!?]`)

// extract picks, per result and indicator, the first sentence mentioning it
func extract(a aspect, results []entity.SearchResult) []string {
	var found []string

	for _, r := range results {
		lower := strings.ToLower(r.Body)
		sentences := sentenceSplit.Split(r.Body, -1)

		for _, ind := range indicators[a] {
			if !strings.Contains(lower, ind) {
				continue
			}
			for _, s := range sentences {
				s = strings.TrimSpace(s)
				if len(s) > minSentenceLen && strings.Contains(strings.ToLower(s), ind) {
					found = append(found, s)
					break
				}
			}
		}
	}

	return dedupe(found, maxFindings)
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}

// appendSources adds the top hits not yet referenced
func appendSources(sources []entity.Source, results []entity.SearchResult) []entity.Source {
	for i, r := range results {
		if i == sourcesPerHit {
			break
		}
		if containsSource(sources, r.Link) {
			continue
		}
		sources = append(sources, entity.Source{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: truncate(r.Body, snippetLen) + "...",
		})
	}
	return sources
}

func containsSource(sources []entity.Source, link string) bool {
	for _, s := range sources {
		if s.URL == link {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
