package services

import (
	"context"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// DeckService exposes the deck catalog.
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
}

type deckService struct {
	catalog repository.CatalogRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(catalog repository.CatalogRepository) DeckService {
	return &deckService{catalog: catalog}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	log.Debug("listing decks")

	decks, err := s.catalog.ListDecks(ctx)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewUnavailableError("list decks", err)
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_service")
	log.Debug("getting deck: id=%d", id)

	if id <= 0 {
		return nil, errors.NewValidationError("deck_id", "must be positive")
	}
	deck, err := s.catalog.Deck(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewUnavailableError("get deck", err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}
