package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "chatflow/client/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates the chi router of the local view API.
func NewRouter(chatHandler *ChatHandler, feedbackHandler *FeedbackHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- State ---
			r.Get("/state", chatHandler.GetState)
			r.Put("/identity", chatHandler.HandleSetIdentity)
			r.Put("/view", chatHandler.HandleSetView)
			r.Delete("/error", chatHandler.HandleDismissError)

			// --- Settings ---
			r.Get("/settings", chatHandler.GetSettings)
			r.Post("/settings", chatHandler.UpdateSettings)

			// --- Sessions ---
			r.Get("/sessions", chatHandler.GetSessions)
			r.Post("/sessions", chatHandler.HandleNewSession)
			r.Put("/sessions/{sessionID}/select", chatHandler.HandleSelectSession)
			r.Put("/sessions/{sessionID}/title", chatHandler.UpdateSessionTitle)
			r.Put("/sessions/{sessionID}/archive", chatHandler.HandleArchiveSession)
			r.Put("/sessions/{sessionID}/restore", chatHandler.HandleRestoreSession)
			r.Delete("/sessions/{sessionID}", chatHandler.HandleDeleteSession)

			// --- Messages ---
			r.Post("/messages", chatHandler.HandleSendMessage)
			r.Put("/messages/{messageID}/reaction", feedbackHandler.HandleSetReaction)
			r.Post("/messages/{messageID}/rating", feedbackHandler.HandleSubmitRating)

			// --- Outbox ---
			r.Get("/outbox", chatHandler.GetPendingSaves)
			r.Post("/outbox/retry", chatHandler.HandleRetryPendingSaves)
		})

		// The state stream holds its connection open and must not time out.
		r.Get("/events", chatHandler.HandleEvents)
	})

	return r
}
