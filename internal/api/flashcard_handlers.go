package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

type ratingRequest struct {
	Rating string `json:"rating"`
}

type ratingResponse struct {
	Progress  models.Progress `json:"progress"`
	DueInDays int             `json:"due_in_days"`
}

// wordTarget reads deck and word ids from the path.
func wordTarget(r *http.Request) (int64, int64, error) {
	deckID, err := pathID(r, "deckID")
	if err != nil {
		return 0, 0, err
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		return 0, 0, err
	}
	return deckID, wordID, nil
}

func readRating(w http.ResponseWriter, r *http.Request) (srs.Rating, error) {
	var req ratingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return "", err
	}
	rating, err := srs.ParseRating(strings.ToLower(strings.TrimSpace(req.Rating)))
	if err != nil {
		return "", errors.NewValidationError("rating", "unknown rating")
	}
	return rating, nil
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	s.handleRating(w, r, s.SessionService.RateReview)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	s.handleRating(w, r, s.SessionService.RateDiscovery)
}

type rateFunc func(ctx context.Context, userID string, deckID, wordID int64, rating srs.Rating, now time.Time) (models.Progress, error)

func (s *Server) handleRating(w http.ResponseWriter, r *http.Request, rate rateFunc) {
	log := logger.FromContext(r.Context())
	deckID, wordID, err := wordTarget(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	rating, err := readRating(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	now := s.now()
	p, err := rate(r.Context(), userFromContext(r.Context()), deckID, wordID, rating, now)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("rated word %d in deck %d: %s", wordID, deckID, rating)
	writeJSON(w, r, http.StatusOK, ratingResponse{Progress: p, DueInDays: max(0, srs.DaysUntil(p.NextReviewDate, now))})
}

func (s *Server) handleDeepDive(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	category := r.URL.Query().Get("category")

	words, err := s.DeepDiveService.Queue(r.Context(), userFromContext(r.Context()), deckID, category)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"category": category,
		"words":    words,
	})
}

func (s *Server) handleDeepDiveViewed(w http.ResponseWriter, r *http.Request) {
	deckID, wordID, err := wordTarget(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	category := r.URL.Query().Get("category")

	err = s.DeepDiveService.MarkViewed(r.Context(), userFromContext(r.Context()), deckID, wordID, category, s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
