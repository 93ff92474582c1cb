// internal/solver/session.go
//
// Session owns the mutable state of one solve: guess history, accumulated
// constraints and the shrinking candidate dictionary. It is not safe for
// concurrent use; callers serialize access.

package solver

import "fmt"

// Session is one play-through from the first guess until solved or exhausted.
type Session struct {
	length      int
	guesses     []Guess
	constraints *Constraints
	dictionary  []Word
}

// NewSession starts a session over dict. The slice is copied.
func NewSession(dict []Word) *Session {
	d := make([]Word, len(dict))
	copy(d, dict)
	return &Session{constraints: NewConstraints(), dictionary: d}
}

// Record appends g to the history, folds it into the constraints, filters the
// dictionary and removes g's word from it.
//
// The word length is fixed by the first recorded guess. Nothing is mutated
// when an error is returned.
func (s *Session) Record(g Guess) error {
	if len(g.Word) == 0 || len(g.Word) != len(g.Result) {
		return fmt.Errorf("record %q: %w", g.Word, ErrInvalidLength)
	}
	if s.length != 0 && len(g.Word) != s.length {
		return fmt.Errorf("record %q: want %d letters: %w", g.Word, s.length, ErrInvalidLength)
	}

	next := s.constraints.Clone()
	if err := next.Add(g); err != nil {
		return err
	}
	kept, err := Retain(s.dictionary, next)
	if err != nil {
		return fmt.Errorf("record %q: %w", g.Word, err)
	}
	dict := kept[:0]
	for _, w := range kept {
		if w != g.Word {
			dict = append(dict, w)
		}
	}

	s.length = len(g.Word)
	s.guesses = append(s.guesses, g)
	s.constraints = next
	s.dictionary = dict
	return nil
}

// Solved reports whether the most recent guess was all Correct.
func (s *Session) Solved() bool {
	if len(s.guesses) == 0 {
		return false
	}
	return s.guesses[len(s.guesses)-1].Solved()
}

// Exhausted reports whether no candidates remain.
func (s *Session) Exhausted() bool { return len(s.dictionary) == 0 }

// Dictionary returns the remaining candidates. Callers must not modify it.
func (s *Session) Dictionary() []Word { return s.dictionary }

// Remaining is the number of candidates left.
func (s *Session) Remaining() int { return len(s.dictionary) }

// Guesses returns the guess history.
func (s *Session) Guesses() []Guess { return s.guesses }

// Constraints returns the accumulated evidence. Callers must not modify it.
func (s *Session) Constraints() *Constraints { return s.constraints }

// Length is the word length fixed by the first guess, or 0 before any guess.
func (s *Session) Length() int { return s.length }
