package services

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

const dateLayout = "2006-01-02"

// DateKey is the UTC calendar day of t as stored in daily_summary.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func validateUserDeck(userID string, deckID int64) error {
	if userID == "" {
		return errors.NewValidationError("user_id", "is required")
	}
	if deckID <= 0 {
		return errors.NewValidationError("deck_id", "must be positive")
	}
	return nil
}

// deckWords returns the deck's vocabulary in catalog order. Member ids with
// no vocabulary record are dropped.
func deckWords(ctx context.Context, catalog repository.CatalogRepository, deckID int64) ([]int64, []models.Vocabulary, error) {
	ids, err := catalog.DeckWordIDs(ctx, deckID)
	if err != nil {
		return nil, nil, err
	}
	if len(ids) == 0 {
		return ids, nil, nil
	}
	vocab, err := catalog.Vocabulary(ctx, ids)
	if err != nil {
		return ids, nil, err
	}
	byID := make(map[int64]models.Vocabulary, len(vocab))
	for _, v := range vocab {
		byID[v.ID] = v
	}
	words := make([]models.Vocabulary, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			words = append(words, v)
		}
	}
	return ids, words, nil
}
