package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/legaldoc-assistant/internal/config"
	"github.com/futig/legaldoc-assistant/internal/entity"
)

// Validator validates incoming requests and conversation answers
type Validator struct {
	cfg config.ConversationConfig
}

func NewValidator(cfg config.ConversationConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAnswer satisfies the conversation answer checker
func (v *Validator) ValidateAnswer(raw string, kind entity.ValueKind, lang entity.Language) (bool, string) {
	return ValidateAnswer(raw, kind, lang)
}

// ValidateStartSession validates StartSessionRequest and returns the parsed language
func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) (entity.Language, error) {
	if req.Language == "" {
		return v.cfg.DefaultLanguage.OrDefault(), nil
	}

	lang, err := entity.ParseLanguage(req.Language)
	if err != nil {
		return "", err
	}

	return lang, nil
}

// ValidateSubmitMessage validates a chat message submission
func (v *Validator) ValidateSubmitMessage(req *entity.SubmitMessageRequest) error {
	if req.Text == nil {
		return fmt.Errorf("%w: text", entity.ErrMissingField)
	}

	if v.cfg.MaxMessageLength > 0 && utf8.RuneCountInString(*req.Text) > v.cfg.MaxMessageLength {
		return fmt.Errorf("%w: text is longer than %d characters", entity.ErrInvalidParameter, v.cfg.MaxMessageLength)
	}

	return nil
}

// ValidateExportFormat accepts docx, pdf and markdown
func (v *Validator) ValidateExportFormat(raw string) (entity.ResultFormat, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: format", entity.ErrMissingField)
	}

	format := entity.ResultFormat(strings.ToLower(strings.TrimSpace(raw)))
	if !format.IsValid() {
		return "", fmt.Errorf("%w: format %q (allowed: markdown, docx, pdf)", entity.ErrInvalidFormat, raw)
	}

	return format, nil
}
