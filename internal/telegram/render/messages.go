package render

import (
	"strings"
	"unicode/utf8"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

// MaxMessageLength is the Telegram limit for one text message
const MaxMessageLength = 4096

// Messages are the texts the bot adds around the conversation replies
type Messages struct {
	Help               string
	NoSession          string
	SessionFinished    string
	ChooseLanguage     string
	LanguageChanged    string
	UnknownLanguage    string
	UnknownCommand     string
	DocumentReady      string
	Exporting          string
	DocumentNotReady   string
	ExportCaption      string
	TextOnly           string
	RateLimitFirst     string
	RateLimitSecond    string
	RateLimitRepeated  string
	ErrGeneric         string
	ErrSessionNotFound string
	ErrTimeout         string
	ErrNetworkIssue    string
	ErrInvalidFormat   string
	ErrInvalidInput    string
	ButtonDOCX         string
	ButtonPDF          string
	ButtonMarkdown     string
	ButtonNewDocument  string
}

var messages = map[entity.Language]Messages{
	entity.LanguageEN: {
		Help: `🤖 *Commands*

/start [en|de] - start a new conversation
/reset - start over in the current language
/language en|de - switch the language (starts over)
/export docx|pdf|markdown - download the finished document
/cancel - end the conversation
/help - show this help

*How it works*
1. Tell me which document you need
2. Answer the questions one by one
3. Download the generated document`,
		NoSession:          "There is no active conversation. Use /start",
		SessionFinished:    "👋 Conversation ended. Use /start to begin a new one.",
		ChooseLanguage:     "🌐 Choose the conversation language:",
		LanguageChanged:    "🌐 Language changed. We start over.",
		UnknownLanguage:    "❌ Unknown language. Use /language en or /language de",
		UnknownCommand:     "❌ Unknown command. Use /help",
		DocumentReady:      "✅ Your document is ready. Download it:",
		Exporting:          "⏳ Preparing the file...",
		DocumentNotReady:   "❌ The document is not ready yet. Finish the questions first.",
		ExportCaption:      "📄 %s",
		TextOnly:           "✍️ Please answer with a text message.",
		RateLimitFirst:     "⚠️ Too many requests. Please wait a moment.",
		RateLimitSecond:    "⚠️ Rate limit exceeded. Wait about 30 seconds before trying again.",
		RateLimitRepeated:  "🛑 You are sending requests too often. Please wait a minute.",
		ErrGeneric:         "❌ Something went wrong. Try again or use /start",
		ErrSessionNotFound: "❌ The conversation has expired. Start a new one with /start",
		ErrTimeout:         "❌ The operation took too long. Please try again.",
		ErrNetworkIssue:    "❌ Connection problem. Please try again later.",
		ErrInvalidFormat:   "❌ Unknown format. Use docx, pdf or markdown.",
		ErrInvalidInput:    "❌ The message could not be processed. Please rephrase it.",
		ButtonDOCX:         "📝 Word (.docx)",
		ButtonPDF:          "📕 PDF",
		ButtonMarkdown:     "📄 Markdown",
		ButtonNewDocument:  "🔄 New document",
	},
	entity.LanguageDE: {
		Help: `🤖 *Befehle*

/start [en|de] - neues Gespräch beginnen
/reset - im aktuellen Sprachmodus neu beginnen
/language en|de - Sprache wechseln (beginnt neu)
/export docx|pdf|markdown - fertiges Dokument herunterladen
/cancel - Gespräch beenden
/help - diese Hilfe anzeigen

*So funktioniert es*
1. Sagen Sie mir, welches Dokument Sie benötigen
2. Beantworten Sie die Fragen nacheinander
3. Laden Sie das erstellte Dokument herunter`,
		NoSession:          "Es gibt kein aktives Gespräch. Verwenden Sie /start",
		SessionFinished:    "👋 Gespräch beendet. Mit /start beginnen Sie ein neues.",
		ChooseLanguage:     "🌐 Wählen Sie die Sprache des Gesprächs:",
		LanguageChanged:    "🌐 Sprache geändert. Wir beginnen von vorne.",
		UnknownLanguage:    "❌ Unbekannte Sprache. Verwenden Sie /language en oder /language de",
		UnknownCommand:     "❌ Unbekannter Befehl. Verwenden Sie /help",
		DocumentReady:      "✅ Ihr Dokument ist fertig. Herunterladen:",
		Exporting:          "⏳ Die Datei wird vorbereitet...",
		DocumentNotReady:   "❌ Das Dokument ist noch nicht fertig. Beantworten Sie zuerst die Fragen.",
		ExportCaption:      "📄 %s",
		TextOnly:           "✍️ Bitte antworten Sie mit einer Textnachricht.",
		RateLimitFirst:     "⚠️ Zu viele Anfragen. Bitte warten Sie einen Moment.",
		RateLimitSecond:    "⚠️ Anfragelimit überschritten. Warten Sie etwa 30 Sekunden.",
		RateLimitRepeated:  "🛑 Sie senden zu häufig Anfragen. Bitte warten Sie eine Minute.",
		ErrGeneric:         "❌ Etwas ist schiefgelaufen. Versuchen Sie es erneut oder verwenden Sie /start",
		ErrSessionNotFound: "❌ Das Gespräch ist abgelaufen. Beginnen Sie ein neues mit /start",
		ErrTimeout:         "❌ Der Vorgang hat zu lange gedauert. Bitte versuchen Sie es erneut.",
		ErrNetworkIssue:    "❌ Verbindungsproblem. Bitte versuchen Sie es später erneut.",
		ErrInvalidFormat:   "❌ Unbekanntes Format. Verwenden Sie docx, pdf oder markdown.",
		ErrInvalidInput:    "❌ Die Nachricht konnte nicht verarbeitet werden. Bitte formulieren Sie sie neu.",
		ButtonDOCX:         "📝 Word (.docx)",
		ButtonPDF:          "📕 PDF",
		ButtonMarkdown:     "📄 Markdown",
		ButtonNewDocument:  "🔄 Neues Dokument",
	},
}

// For returns the bot texts of a language, unknown languages get English
func For(lang entity.Language) Messages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[entity.LanguageEN]
}

// Split cuts text into chunks Telegram accepts. Cuts prefer line breaks and
// never split a rune.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	rest := []rune(text)
	for len(rest) > limit {
		cut := limit
		if i := lastNewline(rest[:limit]); i > 0 {
			cut = i + 1
		}
		chunks = append(chunks, strings.TrimRight(string(rest[:cut]), "\n"))
		rest = rest[cut:]
	}
	if len(rest) > 0 {
		chunks = append(chunks, string(rest))
	}
	return chunks
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
