package conversation

import "github.com/futig/legaldoc-assistant/internal/entity"

type messageSet struct {
	greeting          string
	typeSelected      string // name, first question
	typeSelectedEmpty string // name
	answerAccepted    string // next question
	answerRejected    string // validation error, question
	answersGathered   string
	researchCompleted string // guidance, country
	researchFailed    string // country
	documentEnvelope  string // name, document
	alreadyCompleted  string
	generatorFailed   string // error
	availableTypes    string
	unexpectedFailure string
}

var messageSets = map[entity.Language]messageSet{
	entity.LanguageEN: {
		greeting: "Hello! I'm your legal document assistant. I can help you generate professional legal documents including NDAs, contracts, leases, and more. " +
			"Simply tell me what type of document you need, and I'll guide you through the process step by step. What would you like to create today?",
		typeSelected: "🎯 **Perfect!** I'll help you create a %s.\n\n" +
			"I need to gather some essential information to generate your document. Let me ask you a few questions:\n\n**%s**",
		typeSelectedEmpty: "Great! I'll help you create a %s. Let me generate the document for you.",
		answerAccepted:    "✅ **Got it!** %s",
		answerRejected:    "%s\n\n%s",
		answersGathered: "🎉 Perfect! I have gathered all the necessary information for your document. " +
			"I'm now working on generating your professional legal document. Please hold on while I create it for you...",
		researchCompleted: "%s\n\n🎯 **Now generating your localized document for %s...**\n\n" +
			"Please hold on while I create a jurisdiction-compliant document based on my research.",
		researchFailed: "⚠️ **Note:** I encountered an issue researching %s requirements. " +
			"I'll generate a standard document, but please verify compliance with local laws.\n\n🎯 **Generating your document now...**",
		documentEnvelope: "✅ **Document Generation Complete!**\n\nHere's your generated %s:\n\n%s\n\n" +
			"🎯 **Next Steps:**\nYou can now export this document as a PDF or DOCX file.",
		alreadyCompleted:  "Your document is ready. Export it or reset the conversation to create another document.",
		generatorFailed:   "I apologize, but I encountered an error: %v. Please try again.",
		availableTypes:    "Available document types:",
		unexpectedFailure: "I apologize, but something went wrong while processing your message. Please try again.",
	},
	entity.LanguageDE: {
		greeting: "Hallo! Ich bin Ihr Assistent für rechtliche Dokumente. Ich kann Ihnen bei der Erstellung professioneller rechtlicher Dokumente helfen, einschließlich NDAs, Verträgen, Mietverträgen und mehr. " +
			"Sagen Sie mir einfach, welche Art von Dokument Sie benötigen, und ich führe Sie Schritt für Schritt durch den Prozess. Was möchten Sie heute erstellen?",
		typeSelected: "🎯 **Perfekt!** Ich helfe Ihnen bei der Erstellung: %s.\n\n" +
			"Ich benötige einige wesentliche Informationen, um Ihr Dokument zu erstellen. Lassen Sie mich Ihnen ein paar Fragen stellen:\n\n**%s**",
		typeSelectedEmpty: "Sehr gut! Ich helfe Ihnen bei der Erstellung: %s. Ich erstelle das Dokument jetzt für Sie.",
		answerAccepted:    "✅ **Verstanden!** %s",
		answerRejected:    "%s\n\n%s",
		answersGathered: "🎉 Perfekt! Ich habe alle notwendigen Informationen für Ihr Dokument gesammelt. " +
			"Ich erstelle jetzt Ihr professionelles rechtliches Dokument. Bitte haben Sie einen Moment Geduld...",
		researchCompleted: "%s\n\n🎯 **Ihr lokalisiertes Dokument für %s wird jetzt erstellt...**\n\n" +
			"Bitte haben Sie einen Moment Geduld, während ich auf Grundlage meiner Recherche ein rechtskonformes Dokument erstelle.",
		researchFailed: "⚠️ **Hinweis:** Bei der Recherche der Anforderungen für %s ist ein Problem aufgetreten. " +
			"Ich erstelle ein Standarddokument, bitte prüfen Sie die Einhaltung der örtlichen Gesetze.\n\n🎯 **Ihr Dokument wird jetzt erstellt...**",
		documentEnvelope: "✅ **Dokumenterstellung abgeschlossen!**\n\nHier ist Ihr Dokument (%s):\n\n%s\n\n" +
			"🎯 **Nächste Schritte:**\nSie können dieses Dokument jetzt als PDF- oder DOCX-Datei exportieren.",
		alreadyCompleted:  "Ihr Dokument ist fertig. Exportieren Sie es oder setzen Sie das Gespräch zurück, um ein weiteres Dokument zu erstellen.",
		generatorFailed:   "Entschuldigung, aber es ist ein Fehler aufgetreten: %v. Bitte versuchen Sie es erneut.",
		availableTypes:    "Verfügbare Dokumenttypen:",
		unexpectedFailure: "Entschuldigung, bei der Verarbeitung Ihrer Nachricht ist etwas schiefgelaufen. Bitte versuchen Sie es erneut.",
	},
}

func messagesFor(lang entity.Language) messageSet {
	return messageSets[lang.OrDefault()]
}

// Greeting is the static welcome text
func Greeting(lang entity.Language) string {
	return messagesFor(lang).greeting
}
