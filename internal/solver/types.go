// internal/solver/types.go
//
// Core type definitions for the solver.
// Defines:
//   - Word: a fixed-length guess or candidate (single-byte ASCII).
//   - Correctness: per-letter classification of a guess against a target.
//   - Guess: a word paired with its scoring result.
//   - Sentinel errors shared by the scorer, filter and selector.

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a guess, target or result does not
	// match the expected word length.
	ErrInvalidLength = errors.New("solver: invalid word length")

	// ErrEmptyCandidateSet is returned when a guess is requested from an
	// empty dictionary.
	ErrEmptyCandidateSet = errors.New("solver: empty candidate set")

	// ErrIndexOutOfRange is returned when a pinned letter position falls
	// outside a word.
	ErrIndexOutOfRange = errors.New("solver: pinned position out of range")
)

// Word is a single guess or dictionary entry. Letters are compared byte by byte.
type Word string

// Correctness represents the evaluation result for a single letter in a guess.
type Correctness uint8

const (
	Absent          Correctness = iota // letter does not occur in the target
	MisplacedLetter                    // letter occurs in the target at another position
	Correct                            // letter matches the target at this position
)

// String returns the short name used in logs and JSON payloads.
func (c Correctness) String() string {
	switch c {
	case Correct:
		return "correct"
	case MisplacedLetter:
		return "misplaced"
	default:
		return "absent"
	}
}

// MarshalText encodes a Correctness as its short name.
func (c Correctness) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a short name produced by MarshalText.
func (c *Correctness) UnmarshalText(b []byte) error {
	switch string(b) {
	case "correct":
		*c = Correct
	case "misplaced":
		*c = MisplacedLetter
	case "absent":
		*c = Absent
	default:
		return fmt.Errorf("unknown correctness %q", b)
	}
	return nil
}

// Guess is one turn's evidence: the word played and how it scored.
type Guess struct {
	Word   Word
	Result []Correctness
}

// NewGuess pairs a word with its result, copying the result so the Guess
// cannot be changed through the caller's slice.
func NewGuess(w Word, result []Correctness) (Guess, error) {
	if len(w) != len(result) {
		return Guess{}, ErrInvalidLength
	}
	r := make([]Correctness, len(result))
	copy(r, result)
	return Guess{Word: w, Result: r}, nil
}

// IsSolved reports whether every position in result is Correct.
// An empty result is never solved.
func IsSolved(result []Correctness) bool {
	if len(result) == 0 {
		return false
	}
	for _, c := range result {
		if c != Correct {
			return false
		}
	}
	return true
}

// Solved reports whether the guess matched the target exactly.
func (g Guess) Solved() bool { return IsSolved(g.Result) }

// hasDoubleLetter reports whether any letter occurs more than once in w.
func hasDoubleLetter(w Word) bool {
	var seen [256]bool
	for i := 0; i < len(w); i++ {
		if seen[w[i]] {
			return true
		}
		seen[w[i]] = true
	}
	return false
}

// contains reports whether letter b occurs anywhere in w.
func contains(w Word, b byte) bool {
	for i := 0; i < len(w); i++ {
		if w[i] == b {
			return true
		}
	}
	return false
}
