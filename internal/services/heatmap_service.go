package services

import (
	"context"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/srs"
)

// HeatmapService classifies every word of a set of decks for one user.
type HeatmapService interface {
	Heatmap(ctx context.Context, userID string, deckIDs []int64) (models.Heatmap, error)
}

type heatmapService struct {
	catalog    repository.CatalogRepository
	progress   repository.ProgressRepository
	classifier srs.Classifier
}

// NewHeatmapService creates a new HeatmapService
func NewHeatmapService(catalog repository.CatalogRepository, progress repository.ProgressRepository, opts srs.Options) HeatmapService {
	return &heatmapService{catalog: catalog, progress: progress, classifier: opts.Classifier()}
}

func emptyHeatmap() models.Heatmap {
	return models.Heatmap{Cells: []models.HeatmapCell{}}
}

func (s *heatmapService) Heatmap(ctx context.Context, userID string, deckIDs []int64) (models.Heatmap, error) {
	log := logger.FromContext(ctx).WithPrefix("heatmap_service").WithFields(map[string]any{
		"user_id": userID,
		"decks":   deckIDs,
	})
	log.Debug("building heatmap")

	if userID == "" {
		return emptyHeatmap(), errors.NewValidationError("user_id", "is required")
	}
	if len(deckIDs) == 0 {
		return emptyHeatmap(), errors.NewValidationError("deck", "at least one deck is required")
	}
	for _, id := range deckIDs {
		if id <= 0 {
			return emptyHeatmap(), errors.NewValidationError("deck", "ids must be positive")
		}
	}

	var order []int64
	seen := map[int64]bool{}
	for _, deckID := range deckIDs {
		ids, err := s.catalog.DeckWordIDs(ctx, deckID)
		if err != nil {
			log.Warn("skipping deck %d: %v", deckID, err)
			continue
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				order = append(order, id)
			}
		}
	}
	if len(order) == 0 {
		return emptyHeatmap(), nil
	}

	vocab, err := s.catalog.Vocabulary(ctx, order)
	if err != nil {
		log.Error("catalog unavailable, returning empty heatmap: %v", err)
		return emptyHeatmap(), nil
	}
	terms := make(map[int64]string, len(vocab))
	for _, v := range vocab {
		terms[v.ID] = v.Term
	}

	rows, err := s.progress.ListByDecks(ctx, userID, deckIDs)
	if err != nil {
		log.Error("progress unavailable, reporting all unseen: %v", err)
		rows = nil
	}
	merged := s.classifier.MergeAcrossDecks(rows)

	hm := models.Heatmap{Cells: make([]models.HeatmapCell, 0, len(order))}
	for _, id := range order {
		term, ok := terms[id]
		if !ok {
			continue
		}
		var bucket srs.Bucket
		if p, ok := merged[id]; ok {
			bucket = s.classifier.Classify(&p)
			hm.WordsWithProgress++
		} else {
			bucket = s.classifier.Classify(nil)
		}
		hm.Cells = append(hm.Cells, models.HeatmapCell{WordID: id, Term: term, Bucket: string(bucket)})
	}
	hm.TotalWords = len(hm.Cells)
	return hm, nil
}
