// Package session drives a study session one word at a time.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

// Mode selects which ratings a session accepts.
type Mode int

const (
	Review Mode = iota
	Discovery
)

func (m Mode) String() string {
	if m == Discovery {
		return "discovery"
	}
	return "review"
}

var (
	ErrDone        = errors.New("session is finished")
	ErrWrongRating = errors.New("rating does not belong to this session mode")
	ErrStale       = errors.New("result is not for the current word")
)

// Rater persists one rating. services.SessionService satisfies it through
// an adapter bound to a user and deck.
type Rater interface {
	Rate(ctx context.Context, wordID int64, mode Mode, rating srs.Rating) (models.Progress, error)
}

// RaterFunc adapts a function to Rater.
type RaterFunc func(ctx context.Context, wordID int64, mode Mode, rating srs.Rating) (models.Progress, error)

func (f RaterFunc) Rate(ctx context.Context, wordID int64, mode Mode, rating srs.Rating) (models.Progress, error) {
	return f(ctx, wordID, mode, rating)
}

// Result describes one answered word.
type Result struct {
	Word     models.Vocabulary
	Rating   srs.Rating
	Progress models.Progress
	// Requeued is set when the word went back to the end of the queue.
	Requeued bool
	// SaveErr is the persistence failure, if any. The session has advanced
	// regardless.
	SaveErr error
}

// Session is a live, in-memory queue. Rate only reads it, so a Rate in flight
// may overlap the read accessors; Advance and Answer must not overlap anything.
type Session struct {
	mode     Mode
	rater    Rater
	queue    []models.Vocabulary
	reviewed int
	failed   int
}

// New starts a session over a copy of words.
func New(words []models.Vocabulary, mode Mode, rater Rater) *Session {
	q := make([]models.Vocabulary, len(words))
	copy(q, words)
	return &Session{mode: mode, rater: rater, queue: q}
}

func (s *Session) Mode() Mode { return s.mode }

// Current returns the word on screen; ok is false once the queue is empty.
func (s *Session) Current() (models.Vocabulary, bool) {
	if len(s.queue) == 0 {
		return models.Vocabulary{}, false
	}
	return s.queue[0], true
}

func (s *Session) Done() bool     { return len(s.queue) == 0 }
func (s *Session) Remaining() int { return len(s.queue) }
func (s *Session) Reviewed() int  { return s.reviewed }

// SaveFailures counts ratings that could not be persisted.
func (s *Session) SaveFailures() int { return s.failed }

// Answer rates the current word and moves on. Only invalid use returns an
// error; a failed save is reported in Result.SaveErr.
func (s *Session) Answer(ctx context.Context, rating srs.Rating) (Result, error) {
	res, err := s.Rate(ctx, rating)
	if err != nil {
		return Result{}, err
	}
	return s.Advance(res)
}

// Rate persists rating for the current word without moving the queue.
func (s *Session) Rate(ctx context.Context, rating srs.Rating) (Result, error) {
	word, ok := s.Current()
	if !ok {
		return Result{}, ErrDone
	}
	if (s.mode == Review && !rating.IsReview()) || (s.mode == Discovery && !rating.IsDiscovery()) {
		return Result{}, fmt.Errorf("%w: %s in %s mode", ErrWrongRating, rating, s.mode)
	}

	res := Result{Word: word, Rating: rating}
	res.Progress, res.SaveErr = s.rater.Rate(ctx, word.ID, s.mode, rating)
	return res, nil
}

// Advance applies a result from Rate: the current word leaves the front of
// the queue, and in review mode "again" sends it to the back.
func (s *Session) Advance(res Result) (Result, error) {
	word, ok := s.Current()
	if !ok {
		return res, ErrDone
	}
	if word.ID != res.Word.ID {
		return res, ErrStale
	}
	if res.SaveErr != nil {
		s.failed++
	}

	s.queue = s.queue[1:]
	s.reviewed++
	if s.mode == Review && res.Rating == srs.Again {
		s.queue = append(s.queue, word)
		res.Requeued = true
	}
	return res, nil
}
