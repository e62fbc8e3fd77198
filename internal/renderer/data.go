package renderer

import (
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

// documentData is the template receiver. Every accessor fails on a
// missing answer so an incomplete form never renders silently.
type documentData struct {
	fields map[string]string
	lang   entity.Language
}

func newDocumentData(fields []entity.Field, lang entity.Language) documentData {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.ID] = f.Value
	}
	return documentData{fields: m, lang: lang}
}

func (d documentData) lookup(id string) (string, error) {
	v, ok := d.fields[id]
	if !ok {
		return "", fmt.Errorf("missing field %q", id)
	}
	return v, nil
}

func (d documentData) Text(id string) (string, error) {
	return d.lookup(id)
}

func (d documentData) Date(id string) (string, error) {
	v, err := d.lookup(id)
	if err != nil {
		return "", err
	}
	return FormatDate(v, d.lang), nil
}

func (d documentData) Money(id string) (string, error) {
	v, err := d.lookup(id)
	if err != nil {
		return "", err
	}
	return FormatCurrency(v, d.lang), nil
}

func (d documentData) YesNo(id string) (string, error) {
	v, err := d.lookup(id)
	if err != nil {
		return "", err
	}
	return FormatBoolean(v, d.lang), nil
}

func (d documentData) Yes(id string) (bool, error) {
	v, err := d.lookup(id)
	if err != nil {
		return false, err
	}
	return IsAffirmative(v), nil
}

// Country is the title-cased jurisdiction, empty when none was given
func (d documentData) Country() string {
	v, ok := d.fields[entity.JurisdictionFieldID]
	if !ok {
		return ""
	}
	return FormatCountry(v)
}
