package services

import (
	"context"
	"sort"
	"time"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

// DeepDiveService serves focused queues of one mastery category.
type DeepDiveService interface {
	// Queue returns the deck's words in category: never-viewed words first in
	// random order, then the rest by least recently viewed.
	Queue(ctx context.Context, userID string, deckID int64, category string) ([]models.Vocabulary, error)
	MarkViewed(ctx context.Context, userID string, deckID, wordID int64, category string, now time.Time) error
}

type deepDiveService struct {
	catalog    repository.CatalogRepository
	progress   repository.ProgressRepository
	views      repository.DeepDiveRepository
	classifier srs.Classifier
	spacer     *srs.Spacer
}

// NewDeepDiveService creates a new DeepDiveService
func NewDeepDiveService(
	catalog repository.CatalogRepository,
	progress repository.ProgressRepository,
	views repository.DeepDiveRepository,
	spacer *srs.Spacer,
	opts srs.Options,
) DeepDiveService {
	return &deepDiveService{
		catalog:    catalog,
		progress:   progress,
		views:      views,
		classifier: opts.DeepDiveClassifier(),
		spacer:     spacer,
	}
}

func validateCategory(category string) (srs.Bucket, error) {
	bucket, err := srs.ParseCategory(category)
	if err != nil {
		return "", errors.NewValidationError("category", "must be one of leeches, learning, strengthening, consolidating")
	}
	return bucket, nil
}

func (s *deepDiveService) Queue(ctx context.Context, userID string, deckID int64, category string) ([]models.Vocabulary, error) {
	log := logger.FromContext(ctx).WithPrefix("deep_dive_service").WithFields(map[string]any{
		"user_id":  userID,
		"deck_id":  deckID,
		"category": category,
	})
	log.Debug("building deep-dive queue")

	if err := validateUserDeck(userID, deckID); err != nil {
		return []models.Vocabulary{}, err
	}
	bucket, err := validateCategory(category)
	if err != nil {
		return []models.Vocabulary{}, err
	}

	ids, words, err := deckWords(ctx, s.catalog, deckID)
	if err != nil {
		log.Error("catalog unavailable, returning empty queue: %v", err)
		return []models.Vocabulary{}, nil
	}
	rows, err := s.progress.ListByWords(ctx, userID, deckID, ids)
	if err != nil {
		log.Error("progress unavailable, returning empty queue: %v", err)
		return []models.Vocabulary{}, nil
	}
	progress := srs.IndexProgress(rows)

	var selected []models.Vocabulary
	for _, w := range words {
		p, ok := progress[w.ID]
		if ok && s.classifier.Classify(&p) == bucket {
			selected = append(selected, w)
		}
	}
	if len(selected) == 0 {
		return []models.Vocabulary{}, nil
	}

	views, err := s.views.Viewed(ctx, userID, deckID, category)
	if err != nil {
		// Ordering degrades; the selection is still valid.
		log.Warn("view history unavailable: %v", err)
		views = nil
	}
	lastViewed := make(map[int64]time.Time, len(views))
	for _, v := range views {
		lastViewed[v.VocabularyID] = v.LastViewedAt
	}

	var fresh, seen []models.Vocabulary
	for _, w := range selected {
		if _, ok := lastViewed[w.ID]; ok {
			seen = append(seen, w)
		} else {
			fresh = append(fresh, w)
		}
	}
	s.spacer.Shuffle(fresh)
	sort.SliceStable(seen, func(i, j int) bool {
		return lastViewed[seen[i].ID].Before(lastViewed[seen[j].ID])
	})

	out := append(fresh, seen...)
	log.Debug("deep-dive queue: fresh=%d seen=%d", len(fresh), len(seen))
	return out, nil
}

func (s *deepDiveService) MarkViewed(ctx context.Context, userID string, deckID, wordID int64, category string, now time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("deep_dive_service")
	log.Debug("marking viewed: user_id=%s, deck_id=%d, word_id=%d, category=%s", userID, deckID, wordID, category)

	if err := validateUserDeck(userID, deckID); err != nil {
		return err
	}
	if wordID <= 0 {
		return errors.NewValidationError("word_id", "must be positive")
	}
	if _, err := validateCategory(category); err != nil {
		return err
	}

	err := s.views.MarkViewed(ctx, models.DeepDiveView{
		UserID:       userID,
		DeckID:       deckID,
		VocabularyID: wordID,
		Category:     category,
		LastViewedAt: now,
	})
	if err != nil {
		log.Error("failed to mark viewed: %v", err)
		return errors.NewUnavailableError("mark viewed", err)
	}
	return nil
}
