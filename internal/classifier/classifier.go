package classifier

import (
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

type rule struct {
	documentType entity.DocumentTypeID
	keywords     []string
}

// keywordRules is consulted top to bottom, the first hit wins.
// "arbeitsvertrag" therefore resolves to b2b_contract through "vertrag".
var keywordRules = []rule{
	{entity.DocumentResidentialLease, []string{"lease", "rent", "rental", "mietvertrag", "miete", "wohnung"}},
	{entity.DocumentNDA, []string{"nda", "non-disclosure", "confidentiality", "geheimhaltung", "vertraulich"}},
	{entity.DocumentB2BContract, []string{"b2b", "business", "contract", "service", "vertrag", "dienstleistung"}},
	{entity.DocumentPowerOfAttorney, []string{"power of attorney", "vollmacht", "attorney", "authorization"}},
	{entity.DocumentEmploymentContract, []string{"employment", "work", "job", "arbeitsvertrag", "arbeit"}},
	{entity.DocumentMeetingMinutes, []string{"minutes", "meeting", "resolution", "protokoll", "beschluss"}},
}

// NameSource provides localized display names in classification order
type NameSource interface {
	Types() []entity.DocumentType
}

type Classifier struct {
	names NameSource
}

// New creates a classifier. names may be nil, then only keywords are used.
func New(names NameSource) *Classifier {
	return &Classifier{names: names}
}

// Classify maps a free-text message to a document type
func (c *Classifier) Classify(message string, lang entity.Language) (entity.DocumentTypeID, bool) {
	text := strings.ToLower(message)

	for _, r := range keywordRules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.documentType, true
			}
		}
	}

	if c.names == nil {
		return "", false
	}

	for _, dt := range c.names.Types() {
		name := strings.ToLower(dt.Name.In(lang))
		if name != "" && strings.Contains(text, name) {
			return dt.ID, true
		}
	}

	return "", false
}

// Keywords returns the trigger words of a type
func Keywords(id entity.DocumentTypeID) []string {
	for _, r := range keywordRules {
		if r.documentType == id {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}
