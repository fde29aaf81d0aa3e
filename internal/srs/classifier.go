package srs

import (
	"fmt"

	"github.com/vytor/lexiflash/internal/models"
)

// Bucket is the derived mastery state of a word. It is never stored.
type Bucket string

const (
	BucketUnseen        Bucket = "unseen"
	BucketLeech         Bucket = "leech"
	BucketLearning      Bucket = "learning"
	BucketStrengthening Bucket = "strengthening"
	BucketConsolidating Bucket = "consolidating"
	BucketMastered      Bucket = "mastered"
)

type Classifier struct {
	LeechThreshold int
}

func DefaultClassifier() Classifier {
	return Classifier{LeechThreshold: LeechThreshold}
}

// Classify maps a progress record to its bucket. First match wins:
// no record, leech, then interval bands <7, <21, <60.
func (c Classifier) Classify(p *models.Progress) Bucket {
	if p == nil {
		return BucketUnseen
	}
	threshold := c.LeechThreshold
	if threshold <= 0 {
		threshold = LeechThreshold
	}
	switch {
	case p.AgainCount >= threshold:
		return BucketLeech
	case p.IntervalDays < learningCeiling:
		return BucketLearning
	case p.IntervalDays < strengtheningCeiling:
		return BucketStrengthening
	case p.IntervalDays < consolidatingCeiling:
		return BucketConsolidating
	default:
		return BucketMastered
	}
}

func (c Classifier) IsLeech(p *models.Progress) bool {
	return c.Classify(p) == BucketLeech
}

// Classify uses the canonical thresholds.
func Classify(p *models.Progress) Bucket {
	return DefaultClassifier().Classify(p)
}

// Tally counts progress rows per bucket for a deck of total words.
// Unseen is total minus the number of rows, never negative.
func (c Classifier) Tally(total int, progress []models.Progress) models.DeckMetrics {
	var m models.DeckMetrics
	for i := range progress {
		switch c.Classify(&progress[i]) {
		case BucketLeech:
			m.Leeches++
		case BucketLearning:
			m.Learning++
		case BucketStrengthening:
			m.Strengthening++
		case BucketConsolidating:
			m.Consolidating++
		case BucketMastered:
			m.Mastered++
		}
	}
	m.Unseen = total - len(progress)
	if m.Unseen < 0 {
		m.Unseen = 0
	}
	return m
}

// Category names accepted by the deep-dive filter.
var categories = map[string]Bucket{
	"leeches":       BucketLeech,
	"learning":      BucketLearning,
	"strengthening": BucketStrengthening,
	"consolidating": BucketConsolidating,
}

// ParseCategory maps a deep-dive category name to its bucket.
func ParseCategory(s string) (Bucket, error) {
	b, ok := categories[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return b, nil
}
