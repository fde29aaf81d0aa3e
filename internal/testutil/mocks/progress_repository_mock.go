package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListByDeck(ctx context.Context, userID string, deckID int64) ([]models.Progress, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByDecks(ctx context.Context, userID string, deckIDs []int64) ([]models.Progress, error) {
	args := m.Called(ctx, userID, deckIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByWords(ctx context.Context, userID string, deckID int64, wordIDs []int64) ([]models.Progress, error) {
	args := m.Called(ctx, userID, deckID, wordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string, wordID, deckID int64) (*models.Progress, error) {
	args := m.Called(ctx, userID, wordID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, p models.Progress) (models.Progress, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Progress), args.Error(1)
}
