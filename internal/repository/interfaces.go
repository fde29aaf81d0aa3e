package repository

import (
	"context"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// CatalogRepository reads and extends the deck/vocabulary catalog.
type CatalogRepository interface {
	Deck(ctx context.Context, id int64) (*models.Deck, error)
	ListDecks(ctx context.Context) ([]models.Deck, error)
	// DeckWordIDs returns the deck's word ids in catalog order.
	DeckWordIDs(ctx context.Context, deckID int64) ([]int64, error)
	// Vocabulary returns the records for ids in no particular order.
	Vocabulary(ctx context.Context, ids []int64) ([]models.Vocabulary, error)
	CreateDeck(ctx context.Context, deck models.Deck) (int64, error)
	// AddVocabulary appends words to the end of the deck and returns their ids.
	AddVocabulary(ctx context.Context, deckID int64, words []models.Vocabulary) ([]int64, error)
}

// ProgressRepository handles per (user, word, deck) scheduling state.
// List methods return (nil, nil) when the user has no rows.
type ProgressRepository interface {
	ListByDeck(ctx context.Context, userID string, deckID int64) ([]models.Progress, error)
	ListByDecks(ctx context.Context, userID string, deckIDs []int64) ([]models.Progress, error)
	ListByWords(ctx context.Context, userID string, deckID int64, wordIDs []int64) ([]models.Progress, error)
	Get(ctx context.Context, userID string, wordID, deckID int64) (*models.Progress, error)
	// Upsert writes p keyed on (user, word, deck); last writer wins.
	Upsert(ctx context.Context, p models.Progress) (models.Progress, error)
}

// RatingRepository is the append-only rating log.
type RatingRepository interface {
	Insert(ctx context.Context, e models.RatingEvent) error
	// RecentRatings returns up to limit ratings for the word, oldest first.
	RecentRatings(ctx context.Context, userID string, wordID int64, limit int) ([]models.RatingEvent, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SummaryRepository keeps per-day activity counters.
type SummaryRepository interface {
	Increment(ctx context.Context, userID, date string, reviews, newWords int) error
	Range(ctx context.Context, userID, from, to string) ([]models.DailySummary, error)
}

type DeepDiveRepository interface {
	Viewed(ctx context.Context, userID string, deckID int64, category string) ([]models.DeepDiveView, error)
	MarkViewed(ctx context.Context, v models.DeepDiveView) error
}
