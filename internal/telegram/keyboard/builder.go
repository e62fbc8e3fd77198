package keyboard

import (
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions
const (
	ActionDownload = "dl"
	ActionLanguage = "lang"
	ActionCommand  = "action"

	ValueReset = "reset"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// LanguageKeyboard offers the supported conversation languages
func (b *Builder) LanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", EncodeCallback(ActionLanguage, string(entity.LanguageEN))),
			tgbotapi.NewInlineKeyboardButtonData("🇩🇪 Deutsch", EncodeCallback(ActionLanguage, string(entity.LanguageDE))),
		),
	)
}

// ExportKeyboard creates download buttons for a finished document
func (b *Builder) ExportKeyboard(lang entity.Language) tgbotapi.InlineKeyboardMarkup {
	msg := render.For(lang)

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(msg.ButtonDOCX, EncodeCallback(ActionDownload, string(entity.FormatDOCX))),
			tgbotapi.NewInlineKeyboardButtonData(msg.ButtonPDF, EncodeCallback(ActionDownload, string(entity.FormatPDF))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(msg.ButtonMarkdown, EncodeCallback(ActionDownload, string(entity.FormatMarkdown))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(msg.ButtonNewDocument, EncodeCallback(ActionCommand, ValueReset)),
		),
	)
}
