package srs

import (
	"math/rand/v2"
	"sync"

	"github.com/vytor/lexiflash/internal/models"
)

// Spacer interleaves leeches among regular words so a session never
// clusters its hardest items. Safe for concurrent use.
type Spacer struct {
	classifier Classifier
	minSpacing int

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSpacer builds a spacer drawing permutations from src.
func NewSpacer(c Classifier, minSpacing int, src rand.Source) *Spacer {
	if minSpacing <= 0 {
		minSpacing = LeechMinSpacing
	}
	return &Spacer{classifier: c, minSpacing: minSpacing, rnd: rand.New(src)}
}

// NewSeededSource returns a PCG source; equal seeds give equal arrangements.
func NewSeededSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Space returns words reordered: leeches and regular words are shuffled
// independently, then a leech is placed once minSpacing regular words have
// gone by since the last one, or whenever the regular words run out.
func (s *Spacer) Space(words []models.Vocabulary, progress map[int64]models.Progress) []models.Vocabulary {
	var leeches, regular []models.Vocabulary
	for _, w := range words {
		if p, ok := progress[w.ID]; ok && s.classifier.IsLeech(&p) {
			leeches = append(leeches, w)
		} else {
			regular = append(regular, w)
		}
	}

	s.Shuffle(leeches)
	s.Shuffle(regular)

	out := make([]models.Vocabulary, 0, len(words))
	li, ri, sinceLeech := 0, 0, 0
	for li < len(leeches) || ri < len(regular) {
		if li < len(leeches) && (sinceLeech >= s.minSpacing || ri >= len(regular)) {
			out = append(out, leeches[li])
			li++
			sinceLeech = 0
			continue
		}
		out = append(out, regular[ri])
		ri++
		sinceLeech++
	}
	return out
}

// Shuffle permutes words in place (Fisher-Yates).
func (s *Spacer) Shuffle(words []models.Vocabulary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
