package response

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/futig/legaldoc-assistant/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// headers are already sent, an encoding failure only truncates the body
	if data != nil {
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response with the status text as error code
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Attachment writes a binary download
func Attachment(w http.ResponseWriter, doc *entity.ExportedDocument) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
