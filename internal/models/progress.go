package models

import "time"

// Progress is the per (user, word, deck) scheduling state.
// Absence of a row means the word is unseen for that user and deck.
type Progress struct {
	ID             int64     `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	WordID         int64     `db:"word_id" json:"word_id"`
	DeckID         int64     `db:"deck_id" json:"deck_id"`
	Repetitions    int       `db:"repetitions" json:"repetitions"`
	IntervalDays   int       `db:"interval_days" json:"interval"`
	EaseFactor     float64   `db:"ease_factor" json:"ease_factor"`
	NextReviewDate time.Time `db:"next_review_date" json:"next_review_date"`
	AgainCount     int       `db:"again_count" json:"again_count"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// RatingEvent is one entry of the append-only rating log.
type RatingEvent struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	WordID    int64     `db:"word_id" json:"word_id"`
	DeckID    int64     `db:"deck_id" json:"deck_id"`
	Rating    string    `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type DeepDiveView struct {
	UserID       string    `db:"user_id" json:"user_id"`
	DeckID       int64     `db:"deck_id" json:"deck_id"`
	VocabularyID int64     `db:"vocabulary_id" json:"vocabulary_id"`
	Category     string    `db:"category" json:"category"`
	LastViewedAt time.Time `db:"last_viewed_at" json:"last_viewed_at"`
}
