package validator

import (
	"testing"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		kind    entity.ValueKind
		lang    entity.Language
		ok      bool
		message string
	}{
		{name: "empty text", raw: "", kind: entity.KindText, lang: entity.LanguageEN, message: "Input cannot be empty."},
		{name: "whitespace date", raw: "   ", kind: entity.KindDate, lang: entity.LanguageEN, message: "Input cannot be empty."},
		{name: "empty de", raw: "\t", kind: entity.KindText, lang: entity.LanguageDE, message: "Die Eingabe darf nicht leer sein."},
		{name: "text", raw: "John Doe", kind: entity.KindText, lang: entity.LanguageEN, ok: true},
		{name: "integer", raw: "1500", kind: entity.KindNumber, lang: entity.LanguageEN, ok: true},
		{name: "float", raw: " 12.5 ", kind: entity.KindNumber, lang: entity.LanguageEN, ok: true},
		{name: "not a number", raw: "1500 USD", kind: entity.KindNumber, lang: entity.LanguageEN, message: "Please enter a valid number."},
		{name: "not a number de", raw: "viel", kind: entity.KindNumber, lang: entity.LanguageDE, message: "Bitte geben Sie eine gültige Zahl ein."},
		{name: "iso date", raw: "2024-01-15", kind: entity.KindDate, lang: entity.LanguageEN, ok: true},
		{name: "today", raw: "today", kind: entity.KindDate, lang: entity.LanguageEN, message: "Please enter date in YYYY-MM-DD format."},
		{name: "heute", raw: "heute", kind: entity.KindDate, lang: entity.LanguageDE, message: "Bitte geben Sie das Datum im Format JJJJ-MM-TT ein."},
		{name: "german date format", raw: "15.01.2024", kind: entity.KindDate, lang: entity.LanguageEN, message: "Please enter date in YYYY-MM-DD format."},
		{name: "yes", raw: "Yes", kind: entity.KindBoolean, lang: entity.LanguageEN, ok: true},
		{name: "nein", raw: " NEIN ", kind: entity.KindBoolean, lang: entity.LanguageDE, ok: true},
		{name: "zero", raw: "0", kind: entity.KindBoolean, lang: entity.LanguageEN, ok: true},
		{name: "maybe", raw: "maybe", kind: entity.KindBoolean, lang: entity.LanguageEN, message: "Please answer with yes/no."},
		{name: "vielleicht", raw: "vielleicht", kind: entity.KindBoolean, lang: entity.LanguageDE, message: "Bitte antworten Sie mit ja/nein."},
		{name: "unknown language falls back", raw: "", kind: entity.KindText, lang: "FR", message: "Input cannot be empty."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateAnswer(tt.raw, tt.kind, tt.lang)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, token := range []string{"yes", "y", "ja", "j", "true", "1"} {
		v, ok := ParseBool(token)
		assert.True(t, ok, token)
		assert.True(t, v, token)
	}

	for _, token := range []string{"no", "n", "nein", "false", "0"} {
		v, ok := ParseBool(token)
		assert.True(t, ok, token)
		assert.False(t, v, token)
	}

	_, ok := ParseBool("perhaps")
	assert.False(t, ok)
}
