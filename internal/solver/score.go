// internal/solver/score.go
//
// Guess scoring.
//
// Two modes are available:
//   - naive (default): a single pass with a membership test. A guess letter that
//     is not an exact match is MisplacedLetter whenever the target contains it
//     anywhere. Repeated guess letters are therefore all reported as present even
//     when the target holds fewer copies. This deviates from the published game
//     rules and is kept as the default behavior.
//   - strict: the classic two-pass letter-count algorithm.

package solver

import (
	"fmt"
	"strings"
)

// ScoringMode selects the scoring algorithm.
type ScoringMode string

const (
	ModeNaive  ScoringMode = "naive"
	ModeStrict ScoringMode = "strict"
)

// ParseMode maps a user-supplied name to a ScoringMode. Empty means naive.
func ParseMode(s string) (ScoringMode, error) {
	switch ScoringMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeNaive:
		return ModeNaive, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}

// Scorer scores guesses with a fixed mode.
type Scorer struct {
	Mode ScoringMode
}

// Score compares guess against target using the scorer's mode.
func (s Scorer) Score(guess, target Word) ([]Correctness, error) {
	if s.Mode == ModeStrict {
		return ScoreStrict(guess, target)
	}
	return Score(guess, target)
}

// Score compares guess against target with the naive single-pass algorithm.
func Score(guess, target Word) ([]Correctness, error) {
	if len(guess) != len(target) {
		return nil, fmt.Errorf("score %q against %q: %w", guess, target, ErrInvalidLength)
	}
	res := make([]Correctness, len(guess))
	for i := 0; i < len(guess); i++ {
		switch {
		case guess[i] == target[i]:
			res[i] = Correct
		case contains(target, guess[i]):
			res[i] = MisplacedLetter
		default:
			res[i] = Absent
		}
	}
	return res, nil
}

// ScoreStrict implements the standard two-pass scoring algorithm.
//
// Pass 1 marks exact matches and counts the remaining target letters.
// Pass 2 marks a non-matching guess letter MisplacedLetter only while unused
// copies of it remain; the excess is Absent.
func ScoreStrict(guess, target Word) ([]Correctness, error) {
	if len(guess) != len(target) {
		return nil, fmt.Errorf("score %q against %q: %w", guess, target, ErrInvalidLength)
	}
	n := len(guess)
	res := make([]Correctness, n)
	var counts [256]int

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = Correct
		} else {
			counts[target[i]]++
		}
	}
	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		if counts[guess[i]] > 0 {
			res[i] = MisplacedLetter
			counts[guess[i]]--
		} else {
			res[i] = Absent
		}
	}
	return res, nil
}
