package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/testutil/mocks"
)

func TestDeepDiveQueue_Ordering(t *testing.T) {
	catalog := new(mocks.MockCatalogRepository)
	progress := new(mocks.MockProgressRepository)
	views := new(mocks.MockDeepDiveRepository)

	ids := []int64{1, 2, 3, 4, 5}
	catalog.On("DeckWordIDs", mock.Anything, int64(1)).Return(ids, nil)
	catalog.On("Vocabulary", mock.Anything, ids).Return(vocab(ids...), nil)
	progress.On("ListByWords", mock.Anything, "u", int64(1), ids).Return([]models.Progress{
		{WordID: 1, IntervalDays: 2},
		{WordID: 2, IntervalDays: 3},
		{WordID: 3, IntervalDays: 4},
		{WordID: 4, IntervalDays: 5},
		{WordID: 5, IntervalDays: 30},
	}, nil)
	views.On("Viewed", mock.Anything, "u", int64(1), "learning").Return([]models.DeepDiveView{
		{VocabularyID: 1, LastViewedAt: now.Add(-time.Hour)},
		{VocabularyID: 2, LastViewedAt: now.Add(-48 * time.Hour)},
	}, nil)

	svc := services.NewDeepDiveService(catalog, progress, views, newSpacer(), srs.DefaultOptions())
	out, err := svc.Queue(context.Background(), "u", 1, "learning")

	require.NoError(t, err)
	got := idsOf(out)
	require.Len(t, got, 4)
	assert.ElementsMatch(t, []int64{3, 4}, got[:2])
	assert.Equal(t, []int64{2, 1}, got[2:])
}

func TestDeepDiveQueue_LeechThresholdIsSeparate(t *testing.T) {
	catalog := new(mocks.MockCatalogRepository)
	progress := new(mocks.MockProgressRepository)
	views := new(mocks.MockDeepDiveRepository)

	catalog.On("DeckWordIDs", mock.Anything, int64(1)).Return([]int64{1}, nil)
	catalog.On("Vocabulary", mock.Anything, []int64{1}).Return(vocab(1), nil)
	progress.On("ListByWords", mock.Anything, "u", int64(1), []int64{1}).Return([]models.Progress{
		{WordID: 1, AgainCount: 3, IntervalDays: 40},
	}, nil)
	views.On("Viewed", mock.Anything, "u", int64(1), "leeches").Return(nil, nil)

	opts := srs.DefaultOptions()
	opts.DeepDiveLeechThreshold = 3
	out, err := services.NewDeepDiveService(catalog, progress, views, newSpacer(), opts).
		Queue(context.Background(), "u", 1, "leeches")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, idsOf(out))
}

func TestDeepDiveQueue_InvalidCategory(t *testing.T) {
	catalog := new(mocks.MockCatalogRepository)
	svc := services.NewDeepDiveService(catalog, new(mocks.MockProgressRepository), new(mocks.MockDeepDiveRepository), newSpacer(), srs.DefaultOptions())

	for _, c := range []string{"mastered", "unseen", ""} {
		out, err := svc.Queue(context.Background(), "u", 1, c)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation), c)
		assert.Empty(t, out)
	}
	catalog.AssertNotCalled(t, "DeckWordIDs", mock.Anything, mock.Anything)
}

func TestDeepDiveMarkViewed(t *testing.T) {
	views := new(mocks.MockDeepDiveRepository)
	views.On("MarkViewed", mock.Anything, models.DeepDiveView{
		UserID: "u", DeckID: 1, VocabularyID: 9, Category: "strengthening", LastViewedAt: now,
	}).Return(nil).Once()
	views.On("MarkViewed", mock.Anything, mock.Anything).Return(errDown).Once()

	svc := services.NewDeepDiveService(new(mocks.MockCatalogRepository), new(mocks.MockProgressRepository), views, newSpacer(), srs.DefaultOptions())

	require.NoError(t, svc.MarkViewed(context.Background(), "u", 1, 9, "strengthening", now))
	err := svc.MarkViewed(context.Background(), "u", 1, 9, "strengthening", now)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))

	err = svc.MarkViewed(context.Background(), "u", 1, 9, "mastered", now)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	views.AssertNumberOfCalls(t, "MarkViewed", 2)
}
