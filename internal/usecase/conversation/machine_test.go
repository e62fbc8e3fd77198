package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/legaldoc-assistant/internal/catalog"
	"github.com/futig/legaldoc-assistant/internal/classifier"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/validator"
	"github.com/futig/legaldoc-assistant/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type answerChecker struct{}

func (answerChecker) ValidateAnswer(raw string, kind entity.ValueKind, lang entity.Language) (bool, string) {
	return validator.ValidateAnswer(raw, kind, lang)
}

var ndaAnswers = []string{
	"Acme GmbH",
	"Beta LLC",
	"customer lists",
	"partnership evaluation",
	"2024-01-15",
	"5 years",
	"germany",
}

type fixture struct {
	machine    *Machine
	generator  *generatorMock
	researcher *researcherMock
}

func newFixture(t *testing.T, rend Renderer, opts ...Option) *fixture {
	t.Helper()

	cat := catalog.MustDefault()
	gen := &generatorMock{}
	res := &researcherMock{}

	m, err := New(Dependencies{
		Catalog:    cat,
		Classifier: classifier.New(cat),
		Validator:  answerChecker{},
		Generator:  gen,
		Researcher: res,
		Renderer:   rend,
	}, entity.LanguageEN, opts...)
	require.NoError(t, err)

	return &fixture{machine: m, generator: gen, researcher: res}
}

func (f *fixture) toSelection(t *testing.T) {
	t.Helper()
	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Purpose == entity.PromptDocumentSelection
	})).Return("Which document would you like to create?", nil).Once()

	f.machine.Submit(context.Background(), "hello")
	require.Equal(t, entity.StateDocumentSelection, f.machine.CurrentState())
}

func (f *fixture) selectNDA(t *testing.T) {
	t.Helper()
	f.toSelection(t)
	f.machine.Submit(context.Background(), "I need an NDA")
	require.Equal(t, entity.StateInformationGathering, f.machine.CurrentState())
}

func (f *fixture) answerAll(t *testing.T, answers []string) {
	t.Helper()
	for _, a := range answers {
		f.machine.Submit(context.Background(), a)
	}
}

func TestNew_MissingDependency(t *testing.T) {
	_, err := New(Dependencies{}, entity.LanguageEN)
	assert.ErrorIs(t, err, errMissingDependency)
}

func TestStart(t *testing.T) {
	f := newFixture(t, renderer.MustNew())

	assert.Contains(t, f.machine.Start(context.Background()), "legal document assistant")
	assert.Equal(t, entity.StateGreeting, f.machine.CurrentState())
	assert.Empty(t, f.machine.Snapshot().History)

	f.machine.ChangeLanguage(entity.LanguageDE)
	assert.Contains(t, f.machine.Start(context.Background()), "Assistent für rechtliche Dokumente")
}

func TestGreeting_UsesGeneratorWithCatalog(t *testing.T) {
	f := newFixture(t, renderer.MustNew())

	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Purpose == entity.PromptDocumentSelection &&
			r.Message == "hi" &&
			len(r.History) == 0 &&
			r.Context != nil && len(r.Context.DocumentTypes) == 6
	})).Return("I can draft leases, NDAs and more.", nil).Once()

	text, complete := f.machine.Submit(context.Background(), "hi")

	assert.Equal(t, "I can draft leases, NDAs and more.", text)
	assert.False(t, complete)
	assert.Equal(t, entity.StateDocumentSelection, f.machine.CurrentState())
	assert.Len(t, f.machine.Snapshot().History, 2)
	f.generator.AssertExpectations(t)
}

func TestGreeting_GeneratorFailureStillAdvances(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.generator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	text, complete := f.machine.Submit(context.Background(), "hi")

	assert.False(t, complete)
	assert.Contains(t, text, "I apologize, but I encountered an error: quota exceeded")
	assert.Contains(t, text, "- Non-Disclosure Agreement (NDA): Confidentiality agreement for business relationships")
	assert.Equal(t, entity.StateDocumentSelection, f.machine.CurrentState())
}

func TestDocumentSelection_Match(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.toSelection(t)

	text, complete := f.machine.Submit(context.Background(), "I need an NDA")

	assert.False(t, complete)
	assert.Equal(t, entity.StateInformationGathering, f.machine.CurrentState())
	assert.Contains(t, text, "I'll help you create a Non-Disclosure Agreement (NDA)")
	assert.Contains(t, text, "**What is the name of the company/person sharing confidential information?**")

	docType, ok := f.machine.CurrentDocumentType()
	assert.True(t, ok)
	assert.Equal(t, entity.DocumentNDA, docType)
	assert.Equal(t, 0, f.machine.Snapshot().QuestionIndex)
}

func TestDocumentSelection_NoMatchAsksForClarification(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.toSelection(t)

	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Purpose == entity.PromptDocumentSelection && r.Message == "something legal"
	})).Return("Could you tell me which document you need?", nil).Once()

	text, complete := f.machine.Submit(context.Background(), "something legal")

	assert.False(t, complete)
	assert.Equal(t, "Could you tell me which document you need?", text)
	assert.Equal(t, entity.StateDocumentSelection, f.machine.CurrentState())
	_, ok := f.machine.CurrentDocumentType()
	assert.False(t, ok)
	f.generator.AssertExpectations(t)
}

func TestDocumentSelection_TypeWithoutQuestions(t *testing.T) {
	cat, err := catalog.Parse([]byte(`
document_types:
  - id: memo
    name: {EN: Memo}
`))
	require.NoError(t, err)

	rend := &rendererMock{}
	rend.On("Render", entity.DocumentTypeID("memo"), mock.Anything, entity.LanguageEN).Return("MEMO\n", nil).Once()

	gen := &generatorMock{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("What do you need?", nil)

	m, err := New(Dependencies{
		Catalog: cat,
		Classifier: classifierFunc(func(string, entity.Language) (entity.DocumentTypeID, bool) {
			return "memo", true
		}),
		Validator: answerChecker{},
		Generator: gen,
		Renderer:  rend,
	}, entity.LanguageEN)
	require.NoError(t, err)

	m.Submit(context.Background(), "hi")
	text, complete := m.Submit(context.Background(), "a memo")
	assert.Equal(t, "Great! I'll help you create a Memo. Let me generate the document for you.", text)
	assert.False(t, complete)
	assert.Equal(t, entity.StateDocumentGeneration, m.CurrentState())

	text, complete = m.Submit(context.Background(), "go")
	assert.True(t, complete)
	assert.Contains(t, text, "MEMO")
	assert.Equal(t, entity.StateCompleted, m.CurrentState())
	rend.AssertExpectations(t)
}

func TestInformationGathering_RejectsInvalidBoolean(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.toSelection(t)
	f.machine.Submit(context.Background(), "residential lease please")
	require.Equal(t, entity.StateInformationGathering, f.machine.CurrentState())

	f.answerAll(t, []string{"Jane", "Tom", "1 Main St", "1500", "2000", "2024-01-01", "2024-12-31"})
	before := f.machine.Snapshot()
	require.Equal(t, 7, before.QuestionIndex)

	text, complete := f.machine.Submit(context.Background(), "maybe")

	after := f.machine.Snapshot()
	assert.False(t, complete)
	assert.Equal(t, "Please answer with yes/no.\n\nAre utilities included in the rent? (yes/no)", text)
	assert.Equal(t, before.QuestionIndex, after.QuestionIndex)
	assert.Equal(t, before.CollectedData, after.CollectedData)
	assert.Equal(t, entity.StateInformationGathering, after.State)
}

func TestInformationGathering_DateValidation(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers[:4])

	text, _ := f.machine.Submit(context.Background(), "today")
	assert.Contains(t, text, "Please enter date in YYYY-MM-DD format.")
	assert.Equal(t, 4, f.machine.Snapshot().QuestionIndex)

	text, _ = f.machine.Submit(context.Background(), "2024-01-15")
	assert.Contains(t, text, "✅ **Got it!**")
	assert.Equal(t, 5, f.machine.Snapshot().QuestionIndex)

	snap := f.machine.Snapshot()
	value, ok := snap.Field("effective_date")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-15", value)
}

func TestInformationGathering_StoresAnswerAsGiven(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.selectNDA(t)

	answers := append([]string{" Acme GmbH  "}, ndaAnswers[1:]...)
	answers[4] = " 2024-01-15\t"
	f.answerAll(t, answers)

	snap := f.machine.Snapshot()
	disclosing, ok := snap.Field("disclosing_party")
	require.True(t, ok)
	assert.Equal(t, " Acme GmbH  ", disclosing)

	date, ok := snap.Field("effective_date")
	require.True(t, ok)
	assert.Equal(t, " 2024-01-15\t", date)

	text, complete := f.machine.Submit(context.Background(), "go ahead")
	assert.True(t, complete)
	assert.Contains(t, text, "entered into on January 15, 2024")
}

func TestInformationGathering_QuestionIndexProperty(t *testing.T) {
	for k := 0; k <= len(ndaAnswers)+2; k++ {
		f := newFixture(t, renderer.MustNew())
		f.selectNDA(t)

		for i := 0; i < k && f.machine.CurrentState() == entity.StateInformationGathering; i++ {
			f.machine.Submit(context.Background(), ndaAnswers[i%len(ndaAnswers)])
		}

		s := f.machine.Snapshot()
		want := min(k, len(ndaAnswers))
		assert.Equal(t, want, s.QuestionIndex, "k=%d", k)
		require.Len(t, s.CollectedData, want)

		questions := catalog.MustDefault().Questions(entity.DocumentNDA)
		for i, field := range s.CollectedData {
			assert.Equal(t, questions[i].ID, field.ID)
		}
	}
}

func TestInformationGathering_FinalAnswerThenRender(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers[:len(ndaAnswers)-1])

	text, complete := f.machine.Submit(context.Background(), ndaAnswers[len(ndaAnswers)-1])
	assert.False(t, complete)
	assert.Contains(t, text, "I have gathered all the necessary information")
	assert.Equal(t, entity.StateDocumentGeneration, f.machine.CurrentState())

	text, complete = f.machine.Submit(context.Background(), "go ahead")
	assert.True(t, complete)
	assert.Equal(t, entity.StateCompleted, f.machine.CurrentState())
	assert.Contains(t, text, "✅ **Document Generation Complete!**")
	assert.Contains(t, text, "Here's your generated Non-Disclosure Agreement (NDA):")
	assert.Contains(t, text, "DISCLOSING PARTY: Acme GmbH")
	assert.Contains(t, text, "governed by the laws of Germany")

	docType, ok := f.machine.CurrentDocumentType()
	assert.True(t, ok)
	assert.Equal(t, entity.DocumentNDA, docType)

	doc, ok := f.machine.Document()
	assert.True(t, ok)
	assert.Contains(t, doc, "NON-DISCLOSURE AGREEMENT")
}

func TestGeneration_GeneratorFailureStillCompletes(t *testing.T) {
	rend := &rendererMock{}
	rend.On("Render", entity.DocumentNDA, mock.Anything, entity.LanguageEN).
		Return("", entity.ErrTemplateNotFound).Once()

	f := newFixture(t, rend)
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers)

	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Purpose == entity.PromptDocumentGeneration
	})).Return("", errors.New("connection reset")).Once()

	text, complete := f.machine.Submit(context.Background(), "go")

	assert.True(t, complete)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "Template not found for document type: nda")
	assert.Equal(t, entity.StateCompleted, f.machine.CurrentState())
	f.generator.AssertExpectations(t)
}

func TestGeneration_DraftsWithoutTemplate(t *testing.T) {
	rend := &rendererMock{}
	rend.On("Render", entity.DocumentNDA, mock.Anything, entity.LanguageEN).
		Return("", entity.ErrTemplateNotFound).Once()

	f := newFixture(t, rend)
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers)

	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Purpose == entity.PromptDocumentGeneration &&
			r.Context.DocumentType == entity.DocumentNDA &&
			len(r.Context.CollectedFields) == len(ndaAnswers)
	})).Return("DRAFTED NDA", nil).Once()

	text, complete := f.machine.Submit(context.Background(), "go")

	assert.True(t, complete)
	assert.Contains(t, text, "DRAFTED NDA")
}

func TestGeneration_RenderFailureIsInBand(t *testing.T) {
	rend := &rendererMock{}
	rend.On("Render", entity.DocumentNDA, mock.Anything, entity.LanguageEN).
		Return("", errors.New("boom")).Once()

	f := newFixture(t, rend)
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers)

	text, complete := f.machine.Submit(context.Background(), "go")

	assert.True(t, complete)
	assert.Contains(t, text, "Error generating document: boom")
	assert.Equal(t, entity.StateCompleted, f.machine.CurrentState())
}

func TestLocalizationResearch(t *testing.T) {
	t.Run("guidance is shown", func(t *testing.T) {
		f := newFixture(t, renderer.MustNew(), WithLocalizationResearch(true))
		f.selectNDA(t)
		f.answerAll(t, ndaAnswers)
		require.Equal(t, entity.StateLocalizationResearch, f.machine.CurrentState())

		f.researcher.On("Guidance", mock.Anything, entity.DocumentNDA, "germany").
			Return("🌍 **LOCALIZATION RESEARCH FOR GERMANY - Nda**", nil).Once()

		text, complete := f.machine.Submit(context.Background(), "continue")

		assert.False(t, complete)
		assert.Contains(t, text, "LOCALIZATION RESEARCH FOR GERMANY")
		assert.Contains(t, text, "Now generating your localized document for Germany...")
		assert.Equal(t, entity.StateDocumentGeneration, f.machine.CurrentState())
		assert.NotEmpty(t, f.machine.Snapshot().Guidance)

		_, complete = f.machine.Submit(context.Background(), "continue")
		assert.True(t, complete)
		f.researcher.AssertExpectations(t)
	})

	t.Run("failure degrades to a note", func(t *testing.T) {
		f := newFixture(t, renderer.MustNew(), WithLocalizationResearch(true))
		f.selectNDA(t)
		f.answerAll(t, ndaAnswers)

		f.researcher.On("Guidance", mock.Anything, entity.DocumentNDA, "germany").
			Return("", entity.ErrResearchUnavailable).Once()

		text, complete := f.machine.Submit(context.Background(), "continue")

		assert.False(t, complete)
		assert.Contains(t, text, "I encountered an issue researching Germany requirements")
		assert.Equal(t, entity.StateDocumentGeneration, f.machine.CurrentState())
	})

	t.Run("no jurisdiction skips research", func(t *testing.T) {
		f := newFixture(t, renderer.MustNew(), WithLocalizationResearch(true))
		f.toSelection(t)
		f.machine.Submit(context.Background(), "b2b agreement")
		f.answerAll(t, []string{"Client Co", "Provider Co", "consulting", "50000", "net 30", "2024-01-01", "2024-12-31"})
		require.Equal(t, entity.StateLocalizationResearch, f.machine.CurrentState())

		text, _ := f.machine.Submit(context.Background(), "continue")

		assert.Contains(t, text, "I have gathered all the necessary information")
		assert.Equal(t, entity.StateDocumentGeneration, f.machine.CurrentState())
		f.researcher.AssertNotCalled(t, "Guidance", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleted_FollowUp(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers)
	f.machine.Submit(context.Background(), "go")
	require.Equal(t, entity.StateCompleted, f.machine.CurrentState())

	text, complete := f.machine.Submit(context.Background(), "another one?")

	assert.False(t, complete)
	assert.Contains(t, text, "Your document is ready")
	assert.Equal(t, entity.StateCompleted, f.machine.CurrentState())
}

func TestReset_Idempotent(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers[:3])

	f.machine.Reset()
	once := f.machine.Snapshot()
	f.machine.Reset()
	twice := f.machine.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, entity.StateGreeting, twice.State)
	assert.Empty(t, twice.History)
	assert.Empty(t, twice.CollectedData)
	assert.Zero(t, twice.QuestionIndex)
	_, ok := f.machine.CurrentDocumentType()
	assert.False(t, ok)
}

func TestSubmit_RecoversPanic(t *testing.T) {
	rend := &rendererMock{}
	rend.On("Render", mock.Anything, mock.Anything, mock.Anything).Panic("template engine exploded").Once()

	f := newFixture(t, rend)
	f.selectNDA(t)
	f.answerAll(t, ndaAnswers)
	before := f.machine.Snapshot()

	text, complete := f.machine.Submit(context.Background(), "go")

	assert.False(t, complete)
	assert.Contains(t, text, "something went wrong")
	after := f.machine.Snapshot()
	assert.Equal(t, entity.StateDocumentGeneration, after.State)
	assert.Equal(t, before.CollectedData, after.CollectedData)
	assert.Len(t, after.History, len(before.History)+2)
}

func TestHistoryWindow(t *testing.T) {
	f := newFixture(t, renderer.MustNew(), WithHistoryWindow(3))
	f.toSelection(t)

	f.generator.On("Generate", mock.Anything, mock.Anything).Return("Which one?", nil).Twice()
	f.machine.Submit(context.Background(), "first question")
	f.machine.Submit(context.Background(), "second question")

	calls := f.generator.Calls
	last := calls[len(calls)-1].Arguments.Get(1).(*entity.GenerationRequest)
	require.Len(t, last.History, 3)
	assert.Equal(t, entity.Turn{Role: entity.RoleAssistant, Text: "Which one?"}, last.History[2])
	assert.Equal(t, "second question", last.Message)
}

func TestGermanConversation(t *testing.T) {
	f := newFixture(t, renderer.MustNew())
	f.machine.ChangeLanguage(entity.LanguageDE)

	f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(r *entity.GenerationRequest) bool {
		return r.Language == entity.LanguageDE
	})).Return("Welches Dokument?", nil).Once()
	f.machine.Submit(context.Background(), "hallo")

	text, _ := f.machine.Submit(context.Background(), "Ich brauche eine Vollmacht")
	assert.Contains(t, text, "Vollmacht")
	assert.Contains(t, text, "Wie lautet der vollständige Name des Vollmachtgebers?")

	text, _ = f.machine.Submit(context.Background(), "   ")
	assert.Contains(t, text, "Die Eingabe darf nicht leer sein.")
}
