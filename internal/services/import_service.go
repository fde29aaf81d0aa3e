package services

import (
	"context"
	"strings"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// ImportService creates decks from parsed vocabulary lists.
type ImportService interface {
	// ImportDeck creates deck and appends words in order. It returns the new deck id.
	ImportDeck(ctx context.Context, deck models.Deck, words []models.Vocabulary) (int64, error)
	// AppendWords adds words to the end of an existing deck.
	AppendWords(ctx context.Context, deckID int64, words []models.Vocabulary) (int, error)
}

type importService struct {
	catalog repository.CatalogRepository
}

// NewImportService creates a new ImportService
func NewImportService(catalog repository.CatalogRepository) ImportService {
	return &importService{catalog: catalog}
}

func (s *importService) ImportDeck(ctx context.Context, deck models.Deck, words []models.Vocabulary) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("import_service").WithField("deck", deck.Name)
	log.Info("importing deck with %d words", len(words))

	deck.Name = strings.TrimSpace(deck.Name)
	if deck.Name == "" {
		return 0, errors.NewValidationError("name", "is required")
	}
	if len(words) == 0 {
		return 0, errors.NewValidationError("words", "at least one word is required")
	}

	deckID, err := s.catalog.CreateDeck(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return 0, errors.NewUnavailableError("create deck", err)
	}
	if _, err := s.catalog.AddVocabulary(ctx, deckID, words); err != nil {
		log.Error("failed to add vocabulary: %v", err)
		return deckID, errors.NewUnavailableError("add vocabulary", err)
	}
	log.Info("deck imported: id=%d", deckID)
	return deckID, nil
}

func (s *importService) AppendWords(ctx context.Context, deckID int64, words []models.Vocabulary) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("import_service").WithField("deck_id", deckID)
	log.Info("appending %d words", len(words))

	if deckID <= 0 {
		return 0, errors.NewValidationError("deck_id", "must be positive")
	}
	deck, err := s.catalog.Deck(ctx, deckID)
	if err != nil {
		return 0, errors.NewUnavailableError("get deck", err)
	}
	if deck == nil {
		return 0, errors.NewNotFoundError("deck", deckID)
	}
	ids, err := s.catalog.AddVocabulary(ctx, deckID, words)
	if err != nil {
		log.Error("failed to add vocabulary: %v", err)
		return 0, errors.NewUnavailableError("add vocabulary", err)
	}
	return len(ids), nil
}
