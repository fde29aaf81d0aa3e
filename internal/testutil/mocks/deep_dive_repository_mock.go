package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockDeepDiveRepository is a mock implementation of repository.DeepDiveRepository
type MockDeepDiveRepository struct {
	mock.Mock
}

func (m *MockDeepDiveRepository) Viewed(ctx context.Context, userID string, deckID int64, category string) ([]models.DeepDiveView, error) {
	args := m.Called(ctx, userID, deckID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DeepDiveView), args.Error(1)
}

func (m *MockDeepDiveRepository) MarkViewed(ctx context.Context, v models.DeepDiveView) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
