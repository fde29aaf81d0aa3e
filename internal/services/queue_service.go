package services

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

// QueueService builds the four study queues of a deck.
type QueueService interface {
	// BuildQueues never fails on store errors; it returns empty queues instead.
	// Only invalid input is reported.
	BuildQueues(ctx context.Context, userID string, deckID int64, now time.Time) (models.Queues, error)
}

type queueService struct {
	catalog  repository.CatalogRepository
	progress repository.ProgressRepository
	spacer   *srs.Spacer
	opts     srs.Options
}

// NewQueueService creates a new QueueService
func NewQueueService(catalog repository.CatalogRepository, progress repository.ProgressRepository, spacer *srs.Spacer, opts srs.Options) QueueService {
	return &queueService{catalog: catalog, progress: progress, spacer: spacer, opts: opts}
}

func (s *queueService) BuildQueues(ctx context.Context, userID string, deckID int64, now time.Time) (models.Queues, error) {
	log := logger.FromContext(ctx).WithPrefix("queue_service").WithFields(map[string]any{
		"user_id": userID,
		"deck_id": deckID,
	})
	log.Debug("building queues")

	if err := validateUserDeck(userID, deckID); err != nil {
		return models.EmptyQueues(), err
	}

	_, words, err := deckWords(ctx, s.catalog, deckID)
	if err != nil {
		log.Error("catalog unavailable, returning empty queues: %v", err)
		return models.EmptyQueues(), nil
	}

	rows, err := s.progress.ListByDeck(ctx, userID, deckID)
	if err != nil {
		log.Error("progress unavailable, returning empty queues: %v", err)
		return models.EmptyQueues(), nil
	}
	if len(rows) == 0 {
		log.Debug("no progress yet")
	}

	progress := srs.IndexProgress(rows)
	q := srs.Partition(words, progress, now, s.opts)
	q.Review = s.spacer.Space(q.Review, progress)

	log.Debug("queues built: unseen=%d review=%d practice=%d near_future=%d",
		len(q.Unseen), len(q.Review), len(q.Practice), len(q.NearFuture))
	return q, nil
}
