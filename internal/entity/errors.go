package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrDocumentNotReady  = errors.New("document is not generated yet")
	ErrIllegalTransition = errors.New("illegal state transition")

	// Catalog errors
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidCatalog      = errors.New("invalid document catalog")

	// Rendering errors
	ErrTemplateNotFound = errors.New("template not found")
	ErrRenderFailed     = errors.New("render failed")

	// Collaborator errors
	ErrResearchUnavailable = errors.New("localization research unavailable")
	ErrEmptyCompletion     = errors.New("empty completion")

	// Validation errors
	ErrMissingField        = errors.New("required field is missing")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
