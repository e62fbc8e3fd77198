package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/pkg/logger"
	"github.com/futig/legaldoc-assistant/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase       SessionUsecase
	validator     RequestValidator
	defaultFormat entity.ResultFormat
}

func NewHandler(usecase SessionUsecase, validator RequestValidator, defaultFormat entity.ResultFormat) *Handler {
	return &Handler{
		usecase:       usecase,
		validator:     validator,
		defaultFormat: defaultFormat,
	}
}

// StartSession handles POST /sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	lang, err := h.validator.ValidateStartSession(&req)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	session, greeting, err := h.usecase.StartSession(ctx, lang)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, entity.StartSessionResponse{
		Session: *session,
		Message: greeting,
	})
}

// GetSession handles GET /sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GetSession")

	ctxzap.Debug(ctx, "fetching session")

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// SubmitMessage handles POST /sessions/{id}/messages
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "SubmitMessage")

	var req entity.SubmitMessageRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	resp, err := h.usecase.SubmitMessage(ctx, sessionID, *req.Text)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "message processed",
		zap.String("state", string(resp.State)),
		zap.Bool("is_complete", resp.IsComplete),
	)

	response.Success(w, resp)
}

// ResetSession handles POST /sessions/{id}/reset
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ResetSession")

	session, greeting, err := h.usecase.ResetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.StartSessionResponse{
		Session: *session,
		Message: greeting,
	})
}

// DeleteSession handles DELETE /sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "DeleteSession")

	if err := h.usecase.DeleteSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ExportDocument handles GET /sessions/{id}/export?format=
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ExportDocument")

	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(h.defaultFormat)
	}

	format, err := h.validator.ValidateExportFormat(raw)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid export format", err)
		return
	}

	doc, err := h.usecase.ExportDocument(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Attachment(w, doc)
}

// ListDocumentTypes handles GET /document-types?language=
func (h *Handler) ListDocumentTypes(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocumentTypes")

	lang, err := h.validator.ValidateStartSession(&entity.StartSessionRequest{
		Language: r.URL.Query().Get("language"),
	})
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	response.Success(w, h.usecase.ListDocumentTypes(lang))
}

func (h *Handler) sessionContext(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)
	return ctx, sessionID
}

// decodeBody returns io.EOF for an empty body
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return io.EOF
	}
	return sonic.Unmarshal(data, v)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message+": "+err.Error())
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrUnsupportedLanguage):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrDocumentNotReady):
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
