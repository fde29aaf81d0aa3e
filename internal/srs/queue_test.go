package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

func due(wordID int64, at time.Time) models.Progress {
	return models.Progress{WordID: wordID, DeckID: 1, NextReviewDate: at, EaseFactor: 2.5}
}

func TestPartition(t *testing.T) {
	ws := words(6, 1)
	progress := srs.IndexProgress([]models.Progress{
		due(2, now.Add(-time.Hour)),
		due(3, now.AddDate(0, 0, 2)),
		due(4, now.AddDate(0, 0, 30)),
		due(5, now),
	})

	q := srs.Partition(ws, progress, now, srs.DefaultOptions())

	assert.Equal(t, []int64{1, 6}, ids(q.Unseen))
	assert.Equal(t, []int64{2, 5}, ids(q.Review))
	assert.Equal(t, []int64{3}, ids(q.NearFuture))
	assert.Equal(t, []int64{4}, ids(q.Practice))
}

func TestPartition_PromotesNearFuture(t *testing.T) {
	ws := words(5, 1)
	rows := make([]models.Progress, 0, len(ws))
	for i, w := range ws {
		rows = append(rows, due(w.ID, now.Add(time.Duration(i+1)*time.Hour)))
	}

	q := srs.Partition(ws, srs.IndexProgress(rows), now, srs.DefaultOptions())

	assert.Len(t, q.Review, 5)
	assert.Empty(t, q.NearFuture)
	assert.NotNil(t, q.NearFuture)
}

func TestPartition_PromotionDisabled(t *testing.T) {
	ws := words(2, 1)
	progress := srs.IndexProgress([]models.Progress{due(1, now.Add(time.Hour)), due(2, now.Add(2*time.Hour))})
	opts := srs.DefaultOptions()
	opts.PromoteNearFuture = false

	q := srs.Partition(ws, progress, now, opts)

	assert.Empty(t, q.Review)
	assert.Len(t, q.NearFuture, 2)
}

func TestPartition_EveryWordInExactlyOneQueue(t *testing.T) {
	ws := words(40, 1)
	var rows []models.Progress
	for i, w := range ws {
		if i%5 == 0 {
			continue
		}
		rows = append(rows, due(w.ID, now.Add(time.Duration(i-20)*12*time.Hour)))
	}

	q := srs.Partition(ws, srs.IndexProgress(rows), now, srs.DefaultOptions())

	seen := map[int64]int{}
	for _, list := range [][]models.Vocabulary{q.Unseen, q.Review, q.Practice, q.NearFuture} {
		for _, w := range list {
			seen[w.ID]++
		}
	}
	require.Len(t, seen, len(ws))
	for id, n := range seen {
		assert.Equal(t, 1, n, "word %d", id)
	}
}

func TestPartition_EmptyDeck(t *testing.T) {
	q := srs.Partition(nil, nil, now, srs.DefaultOptions())
	assert.Equal(t, models.EmptyQueues(), q)
}
