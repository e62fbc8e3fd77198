package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/futig/legaldoc-assistant/internal/entity"
	"github.com/futig/legaldoc-assistant/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError maps an error to the message the user sees
func classifyHandlerError(err error, lang entity.Language) *HandlerError {
	msg := render.For(lang)

	switch {
	case err == nil:
		return &HandlerError{UserMessage: msg.ErrGeneric, LogMessage: "unknown error", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrSessionNotFound):
		return &HandlerError{Err: err, UserMessage: msg.ErrSessionNotFound, LogMessage: "session not found", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrDocumentNotReady):
		return &HandlerError{Err: err, UserMessage: msg.DocumentNotReady, LogMessage: "document not ready", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrInvalidFormat):
		return &HandlerError{Err: err, UserMessage: msg.ErrInvalidFormat, LogMessage: "invalid export format", Severity: SeverityWarning}
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrUnsupportedLanguage):
		return &HandlerError{Err: err, UserMessage: msg.ErrInvalidInput, LogMessage: "invalid input", Severity: SeverityWarning}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &HandlerError{Err: err, UserMessage: msg.ErrTimeout, LogMessage: "operation timed out", Severity: SeverityError}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &HandlerError{Err: err, UserMessage: msg.ErrTimeout, LogMessage: "network timeout", Severity: SeverityError}
		}
		return &HandlerError{Err: err, UserMessage: msg.ErrNetworkIssue, LogMessage: "network error", Severity: SeverityError}
	}

	return &HandlerError{Err: err, UserMessage: msg.ErrGeneric, LogMessage: "handler error", Severity: SeverityError}
}

// HandleError logs the error with its severity and tells the user
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, lang entity.Language, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err, lang)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(chatID, handlerErr.UserMessage, nil)
}
