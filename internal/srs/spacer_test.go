package srs_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/matryer/is"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/srs"
)

func words(n int, offset int64) []models.Vocabulary {
	out := make([]models.Vocabulary, n)
	for i := range out {
		id := offset + int64(i)
		out[i] = models.Vocabulary{ID: id, Term: fmt.Sprintf("w%d", id)}
	}
	return out
}

func leechProgress(ws []models.Vocabulary) map[int64]models.Progress {
	m := make(map[int64]models.Progress, len(ws))
	for _, w := range ws {
		m[w.ID] = models.Progress{WordID: w.ID, AgainCount: srs.LeechThreshold}
	}
	return m
}

func ids(ws []models.Vocabulary) []int64 {
	out := make([]int64, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestSpace_EmptyAndSingle(t *testing.T) {
	is := is.New(t)
	s := srs.NewSpacer(srs.DefaultClassifier(), srs.LeechMinSpacing, srs.NewSeededSource(1))

	is.Equal(len(s.Space(nil, nil)), 0)

	one := words(1, 1)
	got := s.Space(one, leechProgress(one))
	is.Equal(len(got), 1)
	is.Equal(got[0].ID, int64(1))
}

func TestSpace_PreservesMultiset(t *testing.T) {
	is := is.New(t)
	for seed := uint64(0); seed < 50; seed++ {
		s := srs.NewSpacer(srs.DefaultClassifier(), srs.LeechMinSpacing, srs.NewSeededSource(seed))
		leeches := words(int(seed%7), 1000)
		regular := words(int(seed%23), 1)
		in := append(append([]models.Vocabulary{}, regular...), leeches...)

		out := s.Space(in, leechProgress(leeches))

		is.Equal(ids(out), ids(in))
	}
}

func TestSpace_NoAdjacentLeechesWhenEnoughRegularWords(t *testing.T) {
	is := is.New(t)
	for seed := uint64(0); seed < 100; seed++ {
		s := srs.NewSpacer(srs.DefaultClassifier(), srs.LeechMinSpacing, srs.NewSeededSource(seed))
		l := int(seed % 6)
		r := l*srs.LeechMinSpacing + int(seed%4)
		leeches := words(l, 1000)
		progress := leechProgress(leeches)

		out := s.Space(append(words(r, 1), leeches...), progress)

		for i := 1; i < len(out); i++ {
			_, prevLeech := progress[out[i-1].ID]
			_, curLeech := progress[out[i].ID]
			is.True(!(prevLeech && curLeech)) // adjacent leeches
		}
	}
}

func TestSpace_OnlyLeechesKeepsAll(t *testing.T) {
	is := is.New(t)
	s := srs.NewSpacer(srs.DefaultClassifier(), srs.LeechMinSpacing, srs.NewSeededSource(3))
	leeches := words(5, 1)

	out := s.Space(leeches, leechProgress(leeches))

	is.Equal(ids(out), ids(leeches))
}

func TestSpace_SameSeedSameOrder(t *testing.T) {
	is := is.New(t)
	in := words(20, 1)
	progress := leechProgress(in[:4])

	a := srs.NewSpacer(srs.DefaultClassifier(), 3, srs.NewSeededSource(42)).Space(in, progress)
	b := srs.NewSpacer(srs.DefaultClassifier(), 3, srs.NewSeededSource(42)).Space(in, progress)

	is.Equal(a, b)
}

func TestSpace_DoesNotMutateInput(t *testing.T) {
	is := is.New(t)
	in := words(10, 1)
	before := append([]models.Vocabulary{}, in...)

	srs.NewSpacer(srs.DefaultClassifier(), 3, srs.NewSeededSource(9)).Space(in, nil)

	is.Equal(in, before)
}
