package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// NewTestDB opens an in-memory SQLite database with the production
// migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	d, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	return d
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedDeck creates a deck holding the given terms in order and returns the
// deck id and the word ids.
func SeedDeck(t *testing.T, catalog repository.CatalogRepository, name string, terms ...string) (int64, []int64) {
	ctx := context.Background()
	deckID, err := catalog.CreateDeck(ctx, models.Deck{Name: name, LanguageA: "es", LanguageB: "en"})
	require.NoError(t, err)

	words := make([]models.Vocabulary, len(terms))
	for i, term := range terms {
		words[i] = models.Vocabulary{Term: term, Translation: term + "-en"}
	}
	ids, err := catalog.AddVocabulary(ctx, deckID, words)
	require.NoError(t, err)
	return deckID, ids
}

// Date is a UTC midnight helper for readable fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
