package services

import (
	"context"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

// MetricsService counts a deck's words per mastery bucket.
type MetricsService interface {
	DeckMetrics(ctx context.Context, userID string, deckID int64) (models.DeckMetrics, error)
}

type metricsService struct {
	catalog    repository.CatalogRepository
	progress   repository.ProgressRepository
	classifier srs.Classifier
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(catalog repository.CatalogRepository, progress repository.ProgressRepository, opts srs.Options) MetricsService {
	return &metricsService{catalog: catalog, progress: progress, classifier: opts.Classifier()}
}

func (s *metricsService) DeckMetrics(ctx context.Context, userID string, deckID int64) (models.DeckMetrics, error) {
	log := logger.FromContext(ctx).WithPrefix("metrics_service").WithFields(map[string]any{
		"user_id": userID,
		"deck_id": deckID,
	})
	log.Debug("computing deck metrics")

	if err := validateUserDeck(userID, deckID); err != nil {
		return models.DeckMetrics{}, err
	}

	ids, err := s.catalog.DeckWordIDs(ctx, deckID)
	if err != nil {
		log.Error("catalog unavailable, returning zero metrics: %v", err)
		return models.DeckMetrics{}, nil
	}

	rows, err := s.progress.ListByDeck(ctx, userID, deckID)
	if err != nil {
		log.Error("progress unavailable, reporting all unseen: %v", err)
		return models.DeckMetrics{Unseen: len(ids)}, nil
	}

	// Rows for words no longer in the deck would break the sum.
	members := make(map[int64]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}
	counted := make([]models.Progress, 0, len(rows))
	for _, p := range rows {
		if members[p.WordID] {
			counted = append(counted, p)
			delete(members, p.WordID)
		}
	}

	m := s.classifier.Tally(len(ids), counted)
	log.Debug("metrics: %+v", m)
	return m, nil
}
