package models

import "time"

// Vocabulary is an immutable word record owned by the content catalog.
type Vocabulary struct {
	ID          int64     `db:"id" json:"id"`
	Term        string    `db:"language_a_word" json:"term"`
	Translation string    `db:"language_b_translation" json:"translation"`
	ExampleA    string    `db:"language_a_sentence" json:"example_a,omitempty"`
	ExampleB    string    `db:"language_b_sentence" json:"example_b,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Deck struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LanguageA string    `db:"language_a_name" json:"language_a"`
	LanguageB string    `db:"language_b_name" json:"language_b"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
