// Package srs holds the spaced repetition rules shared by queue building,
// metrics, deep-dive filtering, the heatmap and the live study session.
//
// Everything here is pure: the current time and the random source are always
// supplied by the caller.
package srs

import (
	"errors"
	"time"
)

const (
	AgainInterval     = 0
	NewWordInterval   = 1
	SecondInterval    = 6
	MasteredInterval  = 365
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// LeechThreshold is the canonical again_count at which a word becomes a leech.
	LeechThreshold = 4
	// HistoricalDeepDiveLeechThreshold is the value the deep-dive filter used
	// before classification was consolidated. Only reachable through Options.
	HistoricalDeepDiveLeechThreshold = 3

	NearFutureThreshold = 3
	LeechMinSpacing     = 3

	learningCeiling      = 7
	strengtheningCeiling = 21
	consolidatingCeiling = 60
)

var (
	ErrInvalidRating   = errors.New("srs: invalid rating")
	ErrInvalidCategory = errors.New("srs: invalid category")
)

// Options carries the tunable thresholds. Every consumer that classifies
// words must derive its Classifier from the same Options value.
type Options struct {
	LeechThreshold         int
	DeepDiveLeechThreshold int
	NearFutureDays         int
	LeechMinSpacing        int
	PromoteNearFuture      bool
}

func DefaultOptions() Options {
	return Options{
		LeechThreshold:         LeechThreshold,
		DeepDiveLeechThreshold: LeechThreshold,
		NearFutureDays:         NearFutureThreshold,
		LeechMinSpacing:        LeechMinSpacing,
		PromoteNearFuture:      true,
	}
}

func (o Options) Classifier() Classifier {
	return Classifier{LeechThreshold: o.LeechThreshold}
}

func (o Options) DeepDiveClassifier() Classifier {
	return Classifier{LeechThreshold: o.DeepDiveLeechThreshold}
}

// Nower supplies the current time.
type Nower interface {
	Now() time.Time
}

type RealNower struct{}

func (RealNower) Now() time.Time {
	return time.Now().UTC()
}

// FixedNower always returns T. Used by tests and replays.
type FixedNower struct {
	T time.Time
}

func (f FixedNower) Now() time.Time {
	return f.T
}
