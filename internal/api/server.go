package api

import (
	"net/http"
	"time"

	"github.com/futig/legaldoc-assistant/internal/api/docs"
	"github.com/futig/legaldoc-assistant/internal/api/middleware"
	sessionapi "github.com/futig/legaldoc-assistant/internal/api/session"
	"github.com/futig/legaldoc-assistant/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(sessionHandler *sessionapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	// generation may wait on a model, keep above the LLM timeout
	r.Use(chimiddleware.Timeout(90 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	sessionapi.RegisterRoutes(r, sessionHandler)

	return r
}
