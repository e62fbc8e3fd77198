package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/renderer"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

func (m *Machine) handleGreeting(ctx context.Context, text string, prior []entity.Turn) reply {
	answer := m.askForDocumentType(ctx, text, prior)
	m.move(ctx, evFirstMessage)
	return reply{text: answer}
}

func (m *Machine) handleDocumentSelection(ctx context.Context, text string, prior []entity.Turn) reply {
	lang := m.session.Language
	msg := messagesFor(lang)

	id, ok := m.deps.Classifier.Classify(text, lang)
	var docType *entity.DocumentType
	if ok {
		docType, ok = m.deps.Catalog.Lookup(id)
	}

	if !ok {
		ctxzap.Extract(ctx).Debug("document type not recognised")
		answer := m.askForDocumentType(ctx, text, prior)
		m.move(ctx, evTypeUnmatched)
		return reply{text: answer}
	}

	m.session.DocumentType = docType.ID
	m.session.QuestionIndex = 0
	m.session.CollectedData = []entity.Field{}

	name := docType.Name.In(lang)
	if len(docType.Questions) == 0 {
		m.move(ctx, evTypeMatchedNoFields)
		return reply{text: fmt.Sprintf(msg.typeSelectedEmpty, name)}
	}

	m.move(ctx, evTypeMatched)
	first := docType.Questions[0].Prompt.In(lang)
	return reply{text: fmt.Sprintf(msg.typeSelected, name, first)}
}

func (m *Machine) handleInformationGathering(ctx context.Context, text string) reply {
	lang := m.session.Language
	msg := messagesFor(lang)
	questions := m.questions()

	if m.session.QuestionIndex >= len(questions) {
		// the catalog shrank under a running session, render what we have
		m.move(ctx, evFormComplete)
		return m.handleDocumentGeneration(ctx, nil)
	}

	q := questions[m.session.QuestionIndex]
	prompt := q.Prompt.In(lang)

	accepted, validationMsg := m.deps.Validator.ValidateAnswer(text, q.Kind, lang)
	if !accepted {
		ctxzap.Extract(ctx).Debug("answer rejected", zap.String("question_id", q.ID), zap.String("kind", string(q.Kind)))
		m.move(ctx, evAnswerRejected)
		return reply{text: fmt.Sprintf(msg.answerRejected, validationMsg, prompt)}
	}

	m.session.CollectedData = append(m.session.CollectedData, entity.Field{
		ID:    q.ID,
		Value: text,
	})
	m.session.QuestionIndex++

	if m.session.QuestionIndex < len(questions) {
		m.move(ctx, evAnswerAccepted)
		next := questions[m.session.QuestionIndex].Prompt.In(lang)
		return reply{text: fmt.Sprintf(msg.answerAccepted, next)}
	}

	if m.opts.localizationResearch {
		m.move(ctx, evFormCompleteLocalize)
	} else {
		m.move(ctx, evFormComplete)
	}
	return reply{text: msg.answersGathered}
}

func (m *Machine) handleLocalizationResearch(ctx context.Context) reply {
	msg := messagesFor(m.session.Language)
	log := ctxzap.Extract(ctx)

	country, _ := m.session.Field(entity.JurisdictionFieldID)
	country = strings.TrimSpace(country)

	if country == "" {
		log.Debug("no jurisdiction given, skipping research")
		m.move(ctx, evResearchFinished)
		return reply{text: msg.answersGathered}
	}

	displayCountry := renderer.FormatCountry(country)

	if m.deps.Researcher == nil {
		log.Warn("localization research requested without a researcher")
		m.move(ctx, evResearchFinished)
		return reply{text: fmt.Sprintf(msg.researchFailed, displayCountry)}
	}

	guidance, err := m.deps.Researcher.Guidance(ctx, m.session.DocumentType, country)
	if err != nil {
		log.Warn("localization research failed", zap.String("country", country), zap.Error(err))
		m.move(ctx, evResearchFinished)
		return reply{text: fmt.Sprintf(msg.researchFailed, displayCountry)}
	}

	m.session.Guidance = guidance
	m.move(ctx, evResearchFinished)
	return reply{text: fmt.Sprintf(msg.researchCompleted, guidance, displayCountry)}
}

func (m *Machine) handleDocumentGeneration(ctx context.Context, prior []entity.Turn) reply {
	lang := m.session.Language
	msg := messagesFor(lang)

	document := m.renderDocument(ctx, prior)
	m.session.Document = document

	m.move(ctx, evRendered)

	name := m.deps.Catalog.DisplayName(m.session.DocumentType, lang)
	return reply{
		text:     fmt.Sprintf(msg.documentEnvelope, name, document),
		complete: true,
	}
}

func (m *Machine) handleCompleted(ctx context.Context) reply {
	m.move(ctx, evFollowUp)
	return reply{text: messagesFor(m.session.Language).alreadyCompleted}
}

// renderDocument always yields displayable text. Types without a template
// are drafted by the generator, any remaining failure is reported in-band.
func (m *Machine) renderDocument(ctx context.Context, prior []entity.Turn) string {
	log := ctxzap.Extract(ctx)
	docType := m.session.DocumentType
	fields := m.CollectedFields()

	doc, err := m.deps.Renderer.Render(docType, fields, m.session.Language)
	if err == nil {
		return doc
	}

	if !errors.Is(err, entity.ErrTemplateNotFound) {
		log.Error("render document", zap.Error(err))
		return renderer.ErrorText(docType, err)
	}

	log.Info("no template for document type, drafting with generator")

	draft, genErr := m.deps.Generator.Generate(ctx, &entity.GenerationRequest{
		Purpose:  entity.PromptDocumentGeneration,
		Language: m.session.Language,
		History:  prior,
		Message:  m.generationInstruction(),
		Context: &entity.GenerationContext{
			DocumentType:    docType,
			CollectedFields: fields,
		},
	})
	if genErr != nil || strings.TrimSpace(draft) == "" {
		log.Error("draft document", zap.Error(genErr))
		return renderer.ErrorText(docType, err)
	}

	return draft
}

func (m *Machine) generationInstruction() string {
	name := m.deps.Catalog.DisplayName(m.session.DocumentType, m.session.Language)
	if m.session.Guidance != "" {
		return fmt.Sprintf("Generate the %s using the collected data and this jurisdiction guidance:\n\n%s", name, m.session.Guidance)
	}
	return fmt.Sprintf("Generate the %s using the collected data.", name)
}

// askForDocumentType lets the generator answer with the catalog as context
func (m *Machine) askForDocumentType(ctx context.Context, text string, prior []entity.Turn) string {
	lang := m.session.Language
	summaries := m.deps.Catalog.Summaries(lang)

	answer, err := m.deps.Generator.Generate(ctx, &entity.GenerationRequest{
		Purpose:  entity.PromptDocumentSelection,
		Language: lang,
		History:  prior,
		Message:  text,
		Context:  &entity.GenerationContext{DocumentTypes: summaries},
	})
	if err == nil && strings.TrimSpace(answer) != "" {
		return answer
	}
	if err == nil {
		err = entity.ErrEmptyCompletion
	}

	ctxzap.Extract(ctx).Warn("text generation failed", zap.Error(err))
	return m.fallbackTypeList(err, summaries)
}

func (m *Machine) fallbackTypeList(err error, summaries []entity.DocumentTypeSummary) string {
	msg := messagesFor(m.session.Language)

	var b strings.Builder
	fmt.Fprintf(&b, msg.generatorFailed, err)
	b.WriteString("\n\n")
	b.WriteString(msg.availableTypes)
	for _, s := range summaries {
		fmt.Fprintf(&b, "\n- %s: %s", s.Name, s.Description)
	}
	return b.String()
}

func (m *Machine) questions() []entity.Question {
	dt, ok := m.deps.Catalog.Lookup(m.session.DocumentType)
	if !ok {
		return nil
	}
	return dt.Questions
}
