package session

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/formatter"
	"github.com/futig/legaldoc-assistant/internal/pkg/logger"
	"github.com/futig/legaldoc-assistant/internal/usecase/conversation"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SessionUsecase owns the conversation registry
type SessionUsecase struct {
	store    SessionStore
	deps     conversation.Dependencies
	opts     []conversation.Option
	catalog  Catalog
	exporter DocumentBuilder
	now      func() time.Time
	logger   *zap.Logger
}

func NewUsecase(
	store SessionStore,
	deps conversation.Dependencies,
	opts []conversation.Option,
	catalog Catalog,
	exporter DocumentBuilder,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		store:    store,
		deps:     deps,
		opts:     opts,
		catalog:  catalog,
		exporter: exporter,
		now:      time.Now,
		logger:   logger,
	}
}

// StartSession creates a conversation and returns it with the greeting
func (uc *SessionUsecase) StartSession(ctx context.Context, lang entity.Language) (*entity.SessionDTO, string, error) {
	machine, err := conversation.New(uc.deps, lang, uc.opts...)
	if err != nil {
		return nil, "", fmt.Errorf("create conversation: %w", err)
	}

	now := uc.now()
	c := &Conversation{
		ID:        uuid.New().String(),
		machine:   machine,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.store.Save(ctx, c.ID, c); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}

	ctx = logger.WithSession(ctx, c.ID)
	ctxzap.Info(ctx, "session started", zap.String("language", string(machine.Language())))

	return toSessionDTO(c), machine.Start(ctx), nil
}

// SubmitMessage runs one conversation turn
func (uc *SessionUsecase) SubmitMessage(ctx context.Context, sessionID, text string) (*entity.MessageResponse, error) {
	var resp *entity.MessageResponse

	err := uc.withSession(ctx, sessionID, func(ctx context.Context, c *Conversation) {
		reply, complete := c.machine.Submit(ctx, text)
		resp = &entity.MessageResponse{
			SessionID:  c.ID,
			Reply:      reply,
			IsComplete: complete,
			State:      c.machine.CurrentState(),
		}
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// ResetSession starts the conversation over in its current language
func (uc *SessionUsecase) ResetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, string, error) {
	var (
		dto      *entity.SessionDTO
		greeting string
	)

	err := uc.withSession(ctx, sessionID, func(ctx context.Context, c *Conversation) {
		c.machine.Reset()
		greeting = c.machine.Start(ctx)
		dto = toSessionDTO(c)
	})
	if err != nil {
		return nil, "", err
	}

	return dto, greeting, nil
}

// ChangeLanguage switches the language, which resets the conversation
func (uc *SessionUsecase) ChangeLanguage(ctx context.Context, sessionID string, lang entity.Language) (*entity.SessionDTO, string, error) {
	var (
		dto      *entity.SessionDTO
		greeting string
	)

	err := uc.withSession(ctx, sessionID, func(ctx context.Context, c *Conversation) {
		c.machine.ChangeLanguage(lang)
		greeting = c.machine.Start(ctx)
		dto = toSessionDTO(c)
	})
	if err != nil {
		return nil, "", err
	}

	return dto, greeting, nil
}

func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	var dto *entity.SessionDTO

	err := uc.readSession(ctx, sessionID, func(c *Conversation) {
		dto = toSessionDTO(c)
	})
	if err != nil {
		return nil, err
	}

	return dto, nil
}

// DeleteSession waits for a running turn, a turn queued behind it sees the session as gone
func (uc *SessionUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	c, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deleted {
		return entity.ErrSessionNotFound
	}
	c.deleted = true

	if err := uc.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	ctxzap.Info(ctx, "session deleted", zap.String("session_id", sessionID))
	return nil
}

// ExportDocument converts the generated document, the session must be COMPLETED
func (uc *SessionUsecase) ExportDocument(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error) {
	var req *formatter.ExportRequest

	err := uc.readSession(ctx, sessionID, func(c *Conversation) {
		text, ok := c.machine.Document()
		if !ok {
			return
		}
		docType, _ := c.machine.CurrentDocumentType()
		lang := c.machine.Language()
		req = &formatter.ExportRequest{
			DocumentType: docType,
			Language:     lang,
			Title:        uc.catalog.Title(docType, lang),
			Text:         text,
			Format:       format,
		}
	})
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, entity.ErrDocumentNotReady
	}

	doc, err := uc.exporter.Build(req)
	if err != nil {
		return nil, fmt.Errorf("export document: %w", err)
	}

	ctxzap.Info(ctx, "document exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.Int("size", len(doc.Data)),
	)

	return doc, nil
}

// ListDocumentTypes returns the catalog in display form
func (uc *SessionUsecase) ListDocumentTypes(lang entity.Language) []entity.DocumentTypeDTO {
	types := uc.catalog.Types()
	out := make([]entity.DocumentTypeDTO, 0, len(types))
	for i := range types {
		out = append(out, toDocumentTypeDTO(&types[i], lang))
	}
	return out
}

// withSession runs fn holding the session lock and refreshes its expiration
func (uc *SessionUsecase) withSession(ctx context.Context, sessionID string, fn func(ctx context.Context, c *Conversation)) error {
	c, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deleted {
		return entity.ErrSessionNotFound
	}

	ctx = logger.WithSession(ctx, c.ID)
	fn(ctx, c)

	c.UpdatedAt = uc.now()
	if err := uc.store.Save(ctx, c.ID, c); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// readSession runs fn holding the session lock without touching it
func (uc *SessionUsecase) readSession(ctx context.Context, sessionID string, fn func(c *Conversation)) error {
	c, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deleted {
		return entity.ErrSessionNotFound
	}

	fn(c)
	return nil
}
