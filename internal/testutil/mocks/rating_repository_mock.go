package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockRatingRepository is a mock implementation of repository.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Insert(ctx context.Context, e models.RatingEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockRatingRepository) RecentRatings(ctx context.Context, userID string, wordID int64, limit int) ([]models.RatingEvent, error) {
	args := m.Called(ctx, userID, wordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RatingEvent), args.Error(1)
}

func (m *MockRatingRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
