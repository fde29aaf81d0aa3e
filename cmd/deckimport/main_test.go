package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestParseArgs(t *testing.T) {
	is := is.New(t)

	o, err := parseArgs([]string{"-file", "words.xlsx", "-deck-name", "Basics", "-term-col", "B", "-start-row", "3"})
	is.NoErr(err)
	is.Equal(o.file, "words.xlsx")
	is.Equal(o.columns.TermColumn, "B")
	is.Equal(o.columns.TranslationColumn, "B")
	is.Equal(o.columns.StartRow, 3)

	_, err = parseArgs([]string{"-deck-name", "Basics"})
	is.True(err != nil) // missing file

	_, err = parseArgs([]string{"-file", "words.csv"})
	is.True(err != nil) // no deck target

	o, err = parseArgs([]string{"-file", "words.csv", "-deck-id", "7"})
	is.NoErr(err)
	is.Equal(o.deckID, int64(7))
}
