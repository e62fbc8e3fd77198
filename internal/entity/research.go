package entity

import "time"

// SearchResult is one web search hit
type SearchResult struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`
}

type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// ResearchRecord is the structured outcome of jurisdiction research
type ResearchRecord struct {
	Country           string         `json:"country"`
	DocumentType      DocumentTypeID `json:"document_type"`
	LegalRequirements []string       `json:"legal_requirements"`
	TemplateStructure []string       `json:"template_structure"`
	KeyClauses        []string       `json:"key_clauses"`
	ComplianceNotes   []string       `json:"compliance_notes"`
	Sources           []Source       `json:"sources"`
	LastUpdated       time.Time      `json:"last_updated"`
}
