package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockSummaryRepository is a mock implementation of repository.SummaryRepository
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Increment(ctx context.Context, userID, date string, reviews, newWords int) error {
	args := m.Called(ctx, userID, date, reviews, newWords)
	return args.Error(0)
}

func (m *MockSummaryRepository) Range(ctx context.Context, userID, from, to string) ([]models.DailySummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailySummary), args.Error(1)
}
