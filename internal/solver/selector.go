// internal/solver/selector.go
//
// Next-guess selection: a uniform draw from the remaining candidates that
// prefers words without repeated letters while the list is large.
// The random source is injectable so games can be replayed from a seed.

package solver

import (
	"math/rand"
	"time"
)

const (
	// smallDictionary is the size below which any sample is accepted.
	smallDictionary = 10
	// maxRejections bounds how many double-letter samples are skipped.
	maxRejections = 4
)

// Selector picks the next guess from the candidate dictionary.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from src. A nil src uses a
// time-seeded source.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(src)}
}

// ChooseNext samples a word uniformly from dict. While dict holds at least
// smallDictionary words, samples with a repeated letter are rejected up to
// maxRejections times; the sample after that is accepted as is.
func (s *Selector) ChooseNext(dict []Word) (Word, error) {
	if len(dict) == 0 {
		return "", ErrEmptyCandidateSet
	}
	for rejected := 0; ; rejected++ {
		w := dict[s.rng.Intn(len(dict))]
		if len(dict) < smallDictionary || !hasDoubleLetter(w) || rejected >= maxRejections {
			return w, nil
		}
	}
}
