package services

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/session"
	"github.com/vytor/lexiflash/internal/srs"
)

// recoveryWindow is how many earlier ratings leech recovery inspects.
const recoveryWindow = 2

// SessionService persists ratings given during a study session.
type SessionService interface {
	RateReview(ctx context.Context, userID string, deckID, wordID int64, rating srs.Rating, now time.Time) (models.Progress, error)
	RateDiscovery(ctx context.Context, userID string, deckID, wordID int64, rating srs.Rating, now time.Time) (models.Progress, error)
}

type sessionService struct {
	progress repository.ProgressRepository
	ratings  repository.RatingRepository
	summary  repository.SummaryRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(progress repository.ProgressRepository, ratings repository.RatingRepository, summary repository.SummaryRepository) SessionService {
	return &sessionService{progress: progress, ratings: ratings, summary: summary}
}

func validateRating(userID string, deckID, wordID int64, rating srs.Rating, discovery bool) error {
	if err := validateUserDeck(userID, deckID); err != nil {
		return err
	}
	if wordID <= 0 {
		return errors.NewValidationError("word_id", "must be positive")
	}
	if discovery && !rating.IsDiscovery() {
		return errors.NewValidationError("rating", "must be learn or know")
	}
	if !discovery && !rating.IsReview() {
		return errors.NewValidationError("rating", "must be again, hard, good or easy")
	}
	return nil
}

// current loads the stored record or the defaults of an unseen word.
func (s *sessionService) current(ctx context.Context, userID string, deckID, wordID int64, now time.Time) (models.Progress, error) {
	p, err := s.progress.Get(ctx, userID, wordID, deckID)
	if err != nil {
		return models.Progress{}, err
	}
	if p != nil {
		return *p, nil
	}
	ns := srs.NewSchedule()
	return models.Progress{
		UserID:         userID,
		WordID:         wordID,
		DeckID:         deckID,
		Repetitions:    ns.Repetitions,
		IntervalDays:   ns.Interval,
		EaseFactor:     ns.EaseFactor,
		NextReviewDate: now,
	}, nil
}

func (s *sessionService) RateReview(ctx context.Context, userID string, deckID, wordID int64, rating srs.Rating, now time.Time) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service").WithFields(map[string]any{
		"user_id": userID,
		"deck_id": deckID,
		"word_id": wordID,
	})
	log.Debug("rating review: %s", rating)

	if err := validateRating(userID, deckID, wordID, rating, false); err != nil {
		return models.Progress{}, err
	}

	cur, err := s.current(ctx, userID, deckID, wordID, now)
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return models.Progress{}, errors.NewUnavailableError("read progress", err)
	}

	next, err := srs.ApplyReview(cur, rating, now)
	if err != nil {
		return models.Progress{}, errors.NewValidationError("rating", err.Error())
	}

	if rating == srs.Easy && next.AgainCount > 0 && s.recovers(ctx, userID, wordID, next.IntervalDays) {
		log.Info("word recovered from leech bucket")
		next.AgainCount = 0
	}

	saved, err := s.save(ctx, next, rating, now)
	if err != nil {
		return models.Progress{}, err
	}
	log.Debug("review saved: interval=%d ease=%.2f due=%s", saved.IntervalDays, saved.EaseFactor, saved.NextReviewDate.Format(time.RFC3339))
	return saved, nil
}

func (s *sessionService) RateDiscovery(ctx context.Context, userID string, deckID, wordID int64, rating srs.Rating, now time.Time) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service").WithFields(map[string]any{
		"user_id": userID,
		"deck_id": deckID,
		"word_id": wordID,
	})
	log.Debug("rating discovery: %s", rating)

	if err := validateRating(userID, deckID, wordID, rating, true); err != nil {
		return models.Progress{}, err
	}

	cur, err := s.current(ctx, userID, deckID, wordID, now)
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return models.Progress{}, errors.NewUnavailableError("read progress", err)
	}

	next, err := srs.ApplyReview(cur, rating, now)
	if err != nil {
		return models.Progress{}, errors.NewValidationError("rating", err.Error())
	}

	return s.save(ctx, next, rating, now)
}

func (s *sessionService) recovers(ctx context.Context, userID string, wordID int64, interval int) bool {
	log := logger.FromContext(ctx).WithPrefix("session_service")
	events, err := s.ratings.RecentRatings(ctx, userID, wordID, recoveryWindow)
	if err != nil {
		log.Warn("rating history unavailable, skipping leech recovery: %v", err)
		return false
	}
	recent := make([]srs.Rating, len(events))
	for i, e := range events {
		recent[i] = srs.Rating(e.Rating)
	}
	return srs.ShouldRecoverLeech(srs.Easy, interval, recent)
}

// save upserts p, then records the rating and bumps the daily summary.
// Only the upsert can fail the call.
func (s *sessionService) save(ctx context.Context, p models.Progress, rating srs.Rating, now time.Time) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service")

	saved, err := s.progress.Upsert(ctx, p)
	if err != nil {
		log.Error("failed to save progress: %v", err)
		return models.Progress{}, errors.NewUnavailableError("save progress", err)
	}

	err = s.ratings.Insert(ctx, models.RatingEvent{
		UserID:    p.UserID,
		WordID:    p.WordID,
		DeckID:    p.DeckID,
		Rating:    string(rating),
		CreatedAt: now,
	})
	if err != nil {
		log.Warn("failed to log rating: %v", err)
	}

	reviews, newWords := 1, 0
	if rating.IsDiscovery() {
		reviews, newWords = 0, 1
	}
	if err := s.summary.Increment(ctx, p.UserID, DateKey(now), reviews, newWords); err != nil {
		log.Warn("failed to update daily summary: %v", err)
	}
	return saved, nil
}

// NewSessionRater binds svc to one user and deck so a session.Session can
// persist its answers.
func NewSessionRater(svc SessionService, userID string, deckID int64, clock srs.Nower) session.Rater {
	return session.RaterFunc(func(ctx context.Context, wordID int64, mode session.Mode, rating srs.Rating) (models.Progress, error) {
		if mode == session.Discovery {
			return svc.RateDiscovery(ctx, userID, deckID, wordID, rating, clock.Now())
		}
		return svc.RateReview(ctx, userID, deckID, wordID, rating, clock.Now())
	})
}
