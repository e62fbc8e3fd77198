package llm

import (
	"fmt"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
)

var systemPrompts = map[entity.PromptPurpose]entity.LocalizedText{
	entity.PromptGreeting: {
		entity.LanguageEN: "You are a professional legal document assistant. Your role is to help users generate legal documents through a conversational interface. " +
			"Be friendly, professional, and guide users through the document generation process step by step. " +
			"Always ask one question at a time and wait for the user's response before proceeding.",
		entity.LanguageDE: "Sie sind ein professioneller Assistent für rechtliche Dokumente. Ihre Aufgabe ist es, Benutzern bei der Erstellung rechtlicher Dokumente durch eine Gesprächsoberfläche zu helfen. " +
			"Seien Sie freundlich, professionell und führen Sie Benutzer Schritt für Schritt durch den Dokumentenerstellungsprozess. " +
			"Stellen Sie immer nur eine Frage auf einmal und warten Sie auf die Antwort des Benutzers, bevor Sie fortfahren.",
	},
	entity.PromptDocumentSelection: {
		entity.LanguageEN: "You are helping the user select a legal document type. Present the available options clearly and ask which type they would like to generate.",
		entity.LanguageDE: "Sie helfen dem Benutzer bei der Auswahl eines rechtlichen Dokumenttyps. Präsentieren Sie die verfügbaren Optionen klar und fragen Sie, welchen Typ sie generieren möchten.",
	},
	entity.PromptInformationGathering: {
		entity.LanguageEN: "You are collecting information for document generation. Ask specific questions one at a time to gather all required information. " +
			"Be clear about what information is needed and why. Validate user responses when appropriate.",
		entity.LanguageDE: "Sie sammeln Informationen für die Dokumentenerstellung. Stellen Sie spezifische Fragen einzeln, um alle erforderlichen Informationen zu sammeln. " +
			"Seien Sie klar darüber, welche Informationen benötigt werden und warum. Validieren Sie Benutzerantworten, wenn es angebracht ist.",
	},
	entity.PromptDocumentGeneration: {
		entity.LanguageEN: "You are generating a legal document based on the collected information. Create a professional, well-formatted document that follows legal standards and best practices. " +
			"If localization context is provided, adapt the document for the target jurisdiction and incorporate country-specific legal requirements.",
		entity.LanguageDE: "Sie erstellen ein rechtliches Dokument basierend auf den gesammelten Informationen. Erstellen Sie ein professionelles, gut formatiertes Dokument, das rechtlichen Standards und bewährten Praktiken entspricht. " +
			"Falls Lokalisierungskontext bereitgestellt wird, passen Sie das Dokument für die Zielgerichtsbarkeit an und integrieren Sie länderspezifische rechtliche Anforderungen.",
	},
}

// SystemPrompt builds the instruction for a request, unknown purposes use the greeting prompt
func SystemPrompt(req *entity.GenerationRequest) string {
	base, ok := systemPrompts[req.Purpose]
	if !ok {
		base = systemPrompts[entity.PromptGreeting]
	}

	var b strings.Builder
	b.WriteString(base.In(req.Language.OrDefault()))

	if req.Context == nil {
		return b.String()
	}
	c := req.Context

	switch req.Purpose {
	case entity.PromptDocumentSelection:
		b.WriteString("\n\nAvailable document types:\n")
		for _, t := range c.DocumentTypes {
			fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		}
		b.WriteString("\nAsk the user which document type they would like to generate.")

	case entity.PromptInformationGathering:
		fmt.Fprintf(&b, "\n\nCurrent question: %s", c.CurrentQuestion)
		if len(c.CollectedFields) > 0 {
			fmt.Fprintf(&b, "\nCollected information so far: %s", formatFields(c.CollectedFields))
		}
		b.WriteString("\nAsk the current question and wait for the user's response.")

	case entity.PromptDocumentGeneration:
		fmt.Fprintf(&b, "\n\nDocument type: %s", c.DocumentType)
		fmt.Fprintf(&b, "\nCollected data: %s", formatFields(c.CollectedFields))
		b.WriteString("\nGenerate a professional legal document using the provided template and data.")
	}

	return b.String()
}

func formatFields(fields []entity.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.ID+"="+f.Value)
	}
	return strings.Join(parts, "; ")
}

// conversation appends the current message to the prior turns
func conversation(req *entity.GenerationRequest) []entity.Turn {
	turns := make([]entity.Turn, 0, len(req.History)+1)
	turns = append(turns, req.History...)
	return append(turns, entity.Turn{Role: entity.RoleUser, Text: req.Message})
}
