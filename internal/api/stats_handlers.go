package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
)

func (s *Server) handleDeckMetrics(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.MetricsService.DeckMetrics(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"metrics": m,
		"total":   m.Total(),
	})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	raw := r.URL.Query()["deck"]
	deckIDs := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid deck"))
			return
		}
		deckIDs = append(deckIDs, id)
	}
	log.Debug("heatmap for %d decks", len(deckIDs))

	hm, err := s.HeatmapService.Heatmap(r.Context(), userFromContext(r.Context()), deckIDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, hm)
}

func (s *Server) handleActivitySummary(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days")
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.ActivityService.Summary(r.Context(), userFromContext(r.Context()), days, s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleActivityCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days, err := s.ActivityService.Calendar(r.Context(), userFromContext(r.Context()), q.Get("from"), q.Get("to"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"days": days})
}
