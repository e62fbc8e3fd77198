package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var errMissingDependency = errors.New("missing conversation dependency")

// Machine drives one conversation. It is not safe for concurrent use,
// callers serialise turns per session.
type Machine struct {
	deps    Dependencies
	opts    options
	session *entity.Session
}

// reply is the outcome of one handled turn
type reply struct {
	text     string
	complete bool
}

func New(deps Dependencies, lang entity.Language, opts ...Option) (*Machine, error) {
	switch {
	case deps.Catalog == nil:
		return nil, fmt.Errorf("%w: catalog", errMissingDependency)
	case deps.Classifier == nil:
		return nil, fmt.Errorf("%w: classifier", errMissingDependency)
	case deps.Validator == nil:
		return nil, fmt.Errorf("%w: validator", errMissingDependency)
	case deps.Generator == nil:
		return nil, fmt.Errorf("%w: generator", errMissingDependency)
	case deps.Renderer == nil:
		return nil, fmt.Errorf("%w: renderer", errMissingDependency)
	}

	return &Machine{
		deps:    deps,
		opts:    newOptions(opts),
		session: entity.NewSession(lang),
	}, nil
}

// Start returns the welcome message of the current language
func (m *Machine) Start(ctx context.Context) string {
	ctx = logger.WithAction(ctx, "conversation_start")
	ctxzap.Extract(ctx).Debug("conversation started", zap.String("language", string(m.session.Language)))

	return messagesFor(m.session.Language).greeting
}

// Submit processes one user message. It never fails: every problem is
// turned into a displayable reply.
func (m *Machine) Submit(ctx context.Context, text string) (answer string, complete bool) {
	ctx = logger.WithAction(ctx, "conversation_submit")
	ctx = logger.AddFields(ctx, m.logFields()...)

	prior := m.recentHistory()
	before := m.session.Clone()

	defer func() {
		if r := recover(); r != nil {
			ctxzap.Extract(ctx).Error("conversation turn panicked", zap.Any("panic", r), zap.Stack("stack"))

			restored := before
			m.session = &restored
			answer = messagesFor(m.session.Language).unexpectedFailure
			complete = false
			m.appendTurn(entity.RoleUser, text)
			m.appendTurn(entity.RoleAssistant, answer)
		}
	}()

	m.appendTurn(entity.RoleUser, text)

	out := m.dispatch(ctx, text, prior)

	m.appendTurn(entity.RoleAssistant, out.text)
	return out.text, out.complete
}

func (m *Machine) dispatch(ctx context.Context, text string, prior []entity.Turn) reply {
	switch m.session.State {
	case entity.StateGreeting:
		return m.handleGreeting(ctx, text, prior)
	case entity.StateDocumentSelection:
		return m.handleDocumentSelection(ctx, text, prior)
	case entity.StateInformationGathering:
		return m.handleInformationGathering(ctx, text)
	case entity.StateLocalizationResearch:
		return m.handleLocalizationResearch(ctx)
	case entity.StateDocumentGeneration:
		return m.handleDocumentGeneration(ctx, prior)
	case entity.StateCompleted:
		return m.handleCompleted(ctx)
	default:
		panic(fmt.Sprintf("unknown conversation state %q", m.session.State))
	}
}

// Reset returns the session to GREETING keeping its language
func (m *Machine) Reset() {
	m.session = entity.NewSession(m.session.Language)
}

// ChangeLanguage switches the language, which always starts over
func (m *Machine) ChangeLanguage(lang entity.Language) {
	m.session = entity.NewSession(lang)
}

func (m *Machine) CurrentState() entity.State {
	return m.session.State
}

func (m *Machine) CurrentDocumentType() (entity.DocumentTypeID, bool) {
	return m.session.DocumentType, m.session.DocumentType != ""
}

// CollectedFields returns the answers in question order
func (m *Machine) CollectedFields() []entity.Field {
	return append([]entity.Field(nil), m.session.CollectedData...)
}

func (m *Machine) Language() entity.Language {
	return m.session.Language
}

// Document is the rendered text once the conversation completed
func (m *Machine) Document() (string, bool) {
	if m.session.State != entity.StateCompleted {
		return "", false
	}
	return m.session.Document, true
}

// Snapshot returns a copy of the session data
func (m *Machine) Snapshot() entity.Session {
	return m.session.Clone()
}

func (m *Machine) move(ctx context.Context, ev event) {
	next, err := transition(m.session.State, ev)
	if err != nil {
		// the table and the handlers disagree, surface it as a failed turn
		panic(err)
	}

	ctxzap.Extract(ctx).Info("conversation transition",
		zap.String("event", string(ev)),
		zap.String("next_state", string(next)),
	)
	m.session.State = next
}

func (m *Machine) appendTurn(role entity.Role, text string) {
	m.session.History = append(m.session.History, entity.Turn{Role: role, Text: text})
}

// recentHistory is the tail of the history before the current message
func (m *Machine) recentHistory() []entity.Turn {
	h := m.session.History
	if len(h) > m.opts.historyWindow {
		h = h[len(h)-m.opts.historyWindow:]
	}
	return append([]entity.Turn(nil), h...)
}

func (m *Machine) logFields() []zap.Field {
	return []zap.Field{
		zap.String("state", string(m.session.State)),
		zap.String("document_type", string(m.session.DocumentType)),
		zap.Int("question_index", m.session.QuestionIndex),
	}
}
