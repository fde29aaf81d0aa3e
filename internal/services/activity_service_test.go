package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/testutil/mocks"
)

func TestClampDays(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 30},
		{-4, 1},
		{1, 1},
		{90, 90},
		{1000, 365},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.ClampDays(tt.in), "ClampDays(%d)", tt.in)
	}
}

func TestActivitySummary(t *testing.T) {
	summary := new(mocks.MockSummaryRepository)
	summary.On("Range", mock.Anything, "u", "2025-02-09", "2025-03-10").Return([]models.DailySummary{
		{UserID: "u", Date: "2025-03-10", ReviewsDone: 5, NewWordsLearned: 2},
		{UserID: "u", Date: "2025-03-09", ReviewsDone: 3},
		{UserID: "u", Date: "2025-03-08", NewWordsLearned: 1},
		{UserID: "u", Date: "2025-03-01", ReviewsDone: 10},
		{UserID: "u", Date: "2025-02-12", ReviewsDone: 4},
	}, nil)

	out, err := services.NewActivityService(summary).Summary(context.Background(), "u", 7, now)

	require.NoError(t, err)
	assert.Equal(t, 7, out.Today)
	assert.Equal(t, 11, out.Last7Days)
	assert.Equal(t, 25, out.Last30Days)
	assert.Equal(t, 3, out.Streak)
	require.Len(t, out.Series, 7)
	assert.Equal(t, "2025-03-04", out.Series[0].Date)
	assert.Equal(t, models.ActivityDay{Date: "2025-03-10", Review: 5, Discovery: 2, Total: 7}, out.Series[6])
	assert.Equal(t, 0, out.Series[3].Total)
}

func TestActivitySummary_StreakBrokenToday(t *testing.T) {
	summary := new(mocks.MockSummaryRepository)
	summary.On("Range", mock.Anything, "u", mock.Anything, mock.Anything).Return([]models.DailySummary{
		{UserID: "u", Date: "2025-03-09", ReviewsDone: 3},
	}, nil)

	out, err := services.NewActivityService(summary).Summary(context.Background(), "u", 0, now)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Streak)
	assert.Len(t, out.Series, 30)
}

func TestActivitySummary_StoreFailure(t *testing.T) {
	summary := new(mocks.MockSummaryRepository)
	summary.On("Range", mock.Anything, "u", mock.Anything, mock.Anything).Return(nil, errDown)

	out, err := services.NewActivityService(summary).Summary(context.Background(), "u", 14, now)

	require.NoError(t, err)
	assert.Zero(t, out.Last30Days)
	assert.Len(t, out.Series, 14)
}

func TestActivityCalendar(t *testing.T) {
	summary := new(mocks.MockSummaryRepository)
	summary.On("Range", mock.Anything, "u", "2025-03-01", "2025-03-03").Return([]models.DailySummary{
		{UserID: "u", Date: "2025-03-02", ReviewsDone: 1, NewWordsLearned: 1},
	}, nil)
	svc := services.NewActivityService(summary)

	days, err := svc.Calendar(context.Background(), "u", "2025-03-01", "2025-03-03")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 2, days[1].Total)

	for _, rng := range [][2]string{
		{"2025/03/01", "2025-03-03"},
		{"2025-03-05", "2025-03-03"},
		{"2023-01-01", "2025-03-03"},
	} {
		_, err := svc.Calendar(context.Background(), "u", rng[0], rng[1])
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), "range %v", rng)
	}
}
