package renderer

import (
	"strconv"
	"strings"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/validator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const inputDateLayout = "2006-01-02"

var (
	amountPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

// FormatDate renders YYYY-MM-DD as "January 15, 2024" or "15.01.2024".
// Anything else is returned unchanged.
func FormatDate(raw string, lang entity.Language) string {
	t, err := time.Parse(inputDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	if lang == entity.LanguageDE {
		return t.Format("02.01.2006")
	}
	return t.Format("January 02, 2006")
}

// FormatCurrency renders a plain number as "$1,500.00" or "1,500.00 €".
// Values with a currency code or other text are returned unchanged.
func FormatCurrency(raw string, lang entity.Language) string {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}

	grouped := amountPrinter.Sprintf("%.2f", amount)
	if lang == entity.LanguageDE {
		return grouped + " €"
	}
	return "$" + grouped
}

// FormatBoolean maps affirmative tokens to Yes/Ja and everything else to No/Nein
func FormatBoolean(raw string, lang entity.Language) string {
	yes := IsAffirmative(raw)

	switch {
	case lang == entity.LanguageDE && yes:
		return "Ja"
	case lang == entity.LanguageDE:
		return "Nein"
	case yes:
		return "Yes"
	default:
		return "No"
	}
}

func IsAffirmative(raw string) bool {
	v, ok := validator.ParseBool(raw)
	return ok && v
}

// FormatCountry title-cases a free-text country name
func FormatCountry(raw string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(raw)))
}
