package entity

type DocumentTypeID string

const (
	DocumentResidentialLease   DocumentTypeID = "residential_lease"
	DocumentNDA                DocumentTypeID = "nda"
	DocumentB2BContract        DocumentTypeID = "b2b_contract"
	DocumentPowerOfAttorney    DocumentTypeID = "power_of_attorney"
	DocumentEmploymentContract DocumentTypeID = "employment_contract"
	DocumentMeetingMinutes     DocumentTypeID = "meeting_minutes"
)

// JurisdictionFieldID is the question id holding the target country
const JurisdictionFieldID = "target_country"

type ValueKind string

// ValueKind is the expected shape of an answer
const (
	KindText    ValueKind = "text"
	KindNumber  ValueKind = "number"
	KindDate    ValueKind = "date"
	KindBoolean ValueKind = "boolean"
)

func (k ValueKind) IsValid() bool {
	switch k {
	case KindText, KindNumber, KindDate, KindBoolean:
		return true
	default:
		return false
	}
}

// LocalizedText maps a language to a text
type LocalizedText map[Language]string

// In returns the text for lang, falling back to DefaultLanguage
func (t LocalizedText) In(lang Language) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[DefaultLanguage]
}

// Question is static catalog data and never mutated at runtime
type Question struct {
	ID       string        `yaml:"id" json:"id"`
	Kind     ValueKind     `yaml:"kind" json:"kind"`
	Prompt   LocalizedText `yaml:"prompt" json:"prompt"`
	Required bool          `yaml:"required" json:"required"`
}

// DocumentType describes one supported document
type DocumentType struct {
	ID                  DocumentTypeID `yaml:"id" json:"id"`
	Name                LocalizedText  `yaml:"name" json:"name"`
	Title               LocalizedText  `yaml:"title" json:"title"`
	Description         LocalizedText  `yaml:"description" json:"description"`
	LocalizationSupport []string       `yaml:"localization_support" json:"localization_support"`
	Questions           []Question     `yaml:"questions" json:"questions"`
}

// Summary returns the catalog entry shown to a model
func (d *DocumentType) Summary(lang Language) DocumentTypeSummary {
	return DocumentTypeSummary{
		ID:          d.ID,
		Name:        d.Name.In(lang),
		Description: d.Description.In(lang),
	}
}
