package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// Rating is an answer grade. Review sessions use again/hard/good/easy,
// discovery sessions use learn/know.
type Rating string

const (
	Again Rating = "again"
	Hard  Rating = "hard"
	Good  Rating = "good"
	Easy  Rating = "easy"
	Learn Rating = "learn"
	Know  Rating = "know"
)

func ParseRating(s string) (Rating, error) {
	r := Rating(s)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

func (r Rating) IsReview() bool {
	switch r {
	case Again, Hard, Good, Easy:
		return true
	}
	return false
}

func (r Rating) IsDiscovery() bool {
	return r == Learn || r == Know
}

func (r Rating) IsValid() bool {
	return r.IsReview() || r.IsDiscovery()
}

// quality is the SM-2 grade used in the ease adjustment.
func (r Rating) quality() float64 {
	switch r {
	case Easy:
		return 5
	case Good:
		return 4
	}
	return 0
}

// Schedule is the part of a progress record the arithmetic rewrites.
type Schedule struct {
	Interval    int
	EaseFactor  float64
	Repetitions int
}

// NewSchedule is the state of a word that has never been rated.
func NewSchedule() Schedule {
	return Schedule{Interval: 0, EaseFactor: DefaultEaseFactor, Repetitions: 0}
}

func ScheduleOf(p models.Progress) Schedule {
	return Schedule{Interval: p.IntervalDays, EaseFactor: p.EaseFactor, Repetitions: p.Repetitions}
}

// NextSchedule applies one rating. The ease factor never drops below MinEaseFactor.
func NextSchedule(cur Schedule, r Rating) (Schedule, error) {
	interval := cur.Interval
	if interval < 0 {
		interval = 0
	}
	ef := cur.EaseFactor
	if math.IsNaN(ef) || math.IsInf(ef, 0) {
		ef = DefaultEaseFactor
	}

	switch r {
	case Again:
		return Schedule{
			Interval:    AgainInterval,
			EaseFactor:  math.Max(MinEaseFactor, ef-0.2),
			Repetitions: 0,
		}, nil
	case Hard:
		return Schedule{
			Interval:    max(1, (interval+1)/2),
			EaseFactor:  math.Max(MinEaseFactor, ef-0.15),
			Repetitions: cur.Repetitions,
		}, nil
	case Good, Easy:
		var next int
		switch cur.Repetitions {
		case 0:
			next = NewWordInterval
		case 1:
			next = SecondInterval
		default:
			next = int(math.Ceil(float64(interval) * ef))
		}
		q := 5 - r.quality()
		return Schedule{
			Interval:    next,
			EaseFactor:  math.Max(MinEaseFactor, ef+(0.1-q*(0.08+q*0.02))),
			Repetitions: cur.Repetitions + 1,
		}, nil
	case Know:
		return Schedule{Interval: MasteredInterval, EaseFactor: DefaultEaseFactor, Repetitions: 1}, nil
	case Learn:
		return Schedule{Interval: AgainInterval, EaseFactor: DefaultEaseFactor, Repetitions: 0}, nil
	}
	return cur, fmt.Errorf("%w: %q", ErrInvalidRating, string(r))
}

// NextReviewDate returns when a word with the new interval is due.
// A word answered early keeps its spacing by advancing from the original due date.
func NextReviewDate(interval int, previousDue, now time.Time) time.Time {
	if interval <= 0 {
		return now
	}
	base := now
	if previousDue.After(now) {
		base = previousDue
	}
	return base.AddDate(0, 0, interval)
}

// ApplyReview rates p at now and returns the updated record. again_count is
// incremented on Again; leech recovery is decided by the caller.
func ApplyReview(p models.Progress, r Rating, now time.Time) (models.Progress, error) {
	next, err := NextSchedule(ScheduleOf(p), r)
	if err != nil {
		return p, err
	}
	p.NextReviewDate = NextReviewDate(next.Interval, p.NextReviewDate, now)
	p.IntervalDays = next.Interval
	p.EaseFactor = next.EaseFactor
	p.Repetitions = next.Repetitions
	if r == Again {
		p.AgainCount++
	}
	p.UpdatedAt = now
	return p, nil
}

// ShouldRecoverLeech reports whether an easy answer lifts a word out of the
// leech bucket: interval of at least a week and the two previous ratings easy.
func ShouldRecoverLeech(r Rating, interval int, recent []Rating) bool {
	if r != Easy || interval < learningCeiling || len(recent) < 2 {
		return false
	}
	for _, prev := range recent[len(recent)-2:] {
		if prev != Easy {
			return false
		}
	}
	return true
}
