package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Delete("/{id}", h.DeleteSession)
		r.Post("/{id}/messages", h.SubmitMessage)
		r.Post("/{id}/reset", h.ResetSession)
		r.Get("/{id}/export", h.ExportDocument)
	})
	r.Get("/document-types", h.ListDocumentTypes)
}
