package srs

import (
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// Partition splits deck words, in catalog order, into the four session
// queues. When nothing is due now and promote is set, the near-future words
// become the review queue. Review ordering is left to the Spacer.
func Partition(words []models.Vocabulary, progress map[int64]models.Progress, now time.Time, opts Options) models.Queues {
	q := models.EmptyQueues()
	for _, w := range words {
		p, ok := progress[w.ID]
		switch {
		case !ok:
			q.Unseen = append(q.Unseen, w)
		case IsDueNow(p.NextReviewDate, now):
			q.Review = append(q.Review, w)
		case IsNearFutureWithin(p.NextReviewDate, now, opts.NearFutureDays):
			q.NearFuture = append(q.NearFuture, w)
		default:
			q.Practice = append(q.Practice, w)
		}
	}

	if opts.PromoteNearFuture && len(q.Review) == 0 && len(q.NearFuture) > 0 {
		q.Review = q.NearFuture
		q.NearFuture = []models.Vocabulary{}
	}
	return q
}

// IndexProgress keys progress rows of a single deck by word id.
func IndexProgress(rows []models.Progress) map[int64]models.Progress {
	m := make(map[int64]models.Progress, len(rows))
	for _, p := range rows {
		m[p.WordID] = p
	}
	return m
}

// MergeAcrossDecks keeps one record per word when a user studies the same
// word in several decks: a leech wins (the higher again_count among leeches),
// otherwise the longest interval wins.
func (c Classifier) MergeAcrossDecks(rows []models.Progress) map[int64]models.Progress {
	m := make(map[int64]models.Progress, len(rows))
	for _, p := range rows {
		prev, ok := m[p.WordID]
		if !ok {
			m[p.WordID] = p
			continue
		}
		prevLeech, curLeech := c.IsLeech(&prev), c.IsLeech(&p)
		switch {
		case curLeech && (!prevLeech || p.AgainCount > prev.AgainCount):
			m[p.WordID] = p
		case !curLeech && !prevLeech && p.IntervalDays > prev.IntervalDays:
			m[p.WordID] = p
		}
	}
	return m
}
