package entity

type PromptPurpose string

// PromptPurpose selects the system instruction used for a generation call
const (
	PromptGreeting             PromptPurpose = "greeting"
	PromptDocumentSelection    PromptPurpose = "document_selection"
	PromptInformationGathering PromptPurpose = "information_gathering"
	PromptDocumentGeneration   PromptPurpose = "document_generation"
)

// DocumentTypeSummary is the catalog entry offered to the model as context
type DocumentTypeSummary struct {
	ID          DocumentTypeID `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
}

// GenerationContext is optional structured context for a generation call
type GenerationContext struct {
	DocumentTypes   []DocumentTypeSummary `json:"document_types,omitempty"`
	DocumentType    DocumentTypeID        `json:"document_type,omitempty"`
	CollectedFields []Field               `json:"collected_fields,omitempty"`
	CurrentQuestion string                `json:"current_question,omitempty"`
}

// GenerationRequest is the input of the text generation collaborator.
// History holds prior turns only; Message is the current user text.
type GenerationRequest struct {
	Purpose  PromptPurpose      `json:"purpose"`
	Language Language           `json:"language"`
	History  []Turn             `json:"history"`
	Message  string             `json:"message"`
	Context  *GenerationContext `json:"context,omitempty"`
}

// LLMCompletionRequest is the wire format of the generic HTTP provider
type LLMCompletionRequest struct {
	System      string  `json:"system"`
	Messages    []Turn  `json:"messages"`
	Model       string  `json:"model,omitempty"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens,omitempty"`
}

type LLMCompletionResponse struct {
	Result string `json:"result"`
}
