package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(recoverJSON)
	r.Use(noStoreHeaders)
	r.Use(timeoutJSON(s.requestTimeout()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/decks", s.handleListDecks)
	r.Route("/decks/{deckID}", func(r chi.Router) {
		r.Get("/", s.handleGetDeck)

		r.Group(func(r chi.Router) {
			r.Use(userMiddleware)
			r.Get("/queues", s.handleQueues)
			r.Get("/metrics", s.handleDeckMetrics)
			r.Get("/deep-dive", s.handleDeepDive)

			r.Group(func(r chi.Router) {
				r.Use(s.rateLimitMiddleware())
				r.Post("/deep-dive/{wordID}/viewed", s.handleDeepDiveViewed)
				r.Post("/words/{wordID}/review", s.handleReview)
				r.Post("/words/{wordID}/discover", s.handleDiscover)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(userMiddleware)
		r.Get("/heatmap", s.handleHeatmap)
		r.Get("/activity/summary", s.handleActivitySummary)
		r.Get("/activity/calendar", s.handleActivityCalendar)
	})

	return r
}
