package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	affirmativeTokens = map[string]struct{}{
		"yes": {}, "y": {}, "ja": {}, "j": {}, "true": {}, "1": {},
	}
	negativeTokens = map[string]struct{}{
		"no": {}, "n": {}, "nein": {}, "false": {}, "0": {},
	}
)

type answerMessages struct {
	empty   string
	number  string
	date    string
	boolean string
}

var messages = map[entity.Language]answerMessages{
	entity.LanguageEN: {
		empty:   "Input cannot be empty.",
		number:  "Please enter a valid number.",
		date:    "Please enter date in YYYY-MM-DD format.",
		boolean: "Please answer with yes/no.",
	},
	entity.LanguageDE: {
		empty:   "Die Eingabe darf nicht leer sein.",
		number:  "Bitte geben Sie eine gültige Zahl ein.",
		date:    "Bitte geben Sie das Datum im Format JJJJ-MM-TT ein.",
		boolean: "Bitte antworten Sie mit ja/nein.",
	},
}

// ValidateAnswer checks a raw answer against the expected kind.
// The error text is empty when the answer is accepted.
func ValidateAnswer(raw string, kind entity.ValueKind, lang entity.Language) (bool, string) {
	msg := messages[lang.OrDefault()]

	value := strings.TrimSpace(raw)
	if value == "" {
		return false, msg.empty
	}

	switch kind {
	case entity.KindNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return false, msg.number
		}
	case entity.KindDate:
		if !datePattern.MatchString(value) {
			return false, msg.date
		}
	case entity.KindBoolean:
		if _, ok := ParseBool(value); !ok {
			return false, msg.boolean
		}
	}

	return true, ""
}

// ParseBool maps a yes/no token in either language to a bool
func ParseBool(raw string) (value bool, ok bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if _, yes := affirmativeTokens[token]; yes {
		return true, true
	}
	if _, no := negativeTokens[token]; no {
		return false, true
	}
	return false, false
}
