package entity

import (
	"fmt"
	"strings"
)

type State string

// State is the conversation state of a session
const (
	// Initial state, the welcome message has been shown
	StateGreeting State = "GREETING"

	// Waiting for the user to name a document type
	StateDocumentSelection State = "DOCUMENT_SELECTION"

	// Slot filling, one question per turn
	StateInformationGathering State = "INFORMATION_GATHERING"

	// Jurisdiction research before rendering
	StateLocalizationResearch State = "LOCALIZATION_RESEARCH"

	// All answers collected, next turn renders the document
	StateDocumentGeneration State = "DOCUMENT_GENERATION"

	// Terminal until reset
	StateCompleted State = "COMPLETED"
)

// States lists every state in flow order
var States = []State{
	StateGreeting,
	StateDocumentSelection,
	StateInformationGathering,
	StateLocalizationResearch,
	StateDocumentGeneration,
	StateCompleted,
}

func (s State) IsValid() bool {
	switch s {
	case StateGreeting, StateDocumentSelection, StateInformationGathering,
		StateLocalizationResearch, StateDocumentGeneration, StateCompleted:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	return string(s)
}

type Language string

const (
	LanguageEN Language = "EN"
	LanguageDE Language = "DE"
)

// DefaultLanguage is used whenever a language is unknown
const DefaultLanguage = LanguageEN

// ParseLanguage accepts "en", "EN", "de", "DE"
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(raw))) {
	case LanguageEN:
		return LanguageEN, nil
	case LanguageDE:
		return LanguageDE, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
}

// OrDefault maps unknown languages to DefaultLanguage
func (l Language) OrDefault() Language {
	if l == LanguageDE {
		return LanguageDE
	}
	return DefaultLanguage
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation history
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Field is a validated answer stored under its question id
type Field struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Session is the mutable data owned by one conversation
type Session struct {
	Language      Language       `json:"language"`
	State         State          `json:"state"`
	DocumentType  DocumentTypeID `json:"document_type,omitempty"`
	CollectedData []Field        `json:"collected_data"`
	QuestionIndex int            `json:"question_index"`
	History       []Turn         `json:"history"`

	// Document holds the rendered text once the session reached COMPLETED
	Document string `json:"document,omitempty"`
	// Guidance holds localization research output, if any was produced
	Guidance string `json:"guidance,omitempty"`
}

// NewSession returns a session in GREETING state
func NewSession(lang Language) *Session {
	return &Session{
		Language:      lang.OrDefault(),
		State:         StateGreeting,
		CollectedData: []Field{},
		History:       []Turn{},
	}
}

// Field returns the collected value for id
func (s *Session) Field(id string) (string, bool) {
	for _, f := range s.CollectedData {
		if f.ID == id {
			return f.Value, true
		}
	}
	return "", false
}

// Clone returns a deep copy
func (s *Session) Clone() Session {
	c := *s
	c.CollectedData = append([]Field(nil), s.CollectedData...)
	c.History = append([]Turn(nil), s.History...)
	if c.CollectedData == nil {
		c.CollectedData = []Field{}
	}
	if c.History == nil {
		c.History = []Turn{}
	}
	return c
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (rf ResultFormat) IsValid() bool {
	switch rf {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ExportedDocument is a rendered document converted to a binary format
type ExportedDocument struct {
	FileName    string
	ContentType string
	Data        []byte
}
