// internal/solver/constraints.go
//
// Accumulated letter evidence and the dictionary filter.
//
// Evidence only grows: excluded, required and pinned letters are never removed.
// Exclusion and requirement are tracked independently. A letter can end up in
// both sets when the scorer reports it Absent at one position and present at
// another (strict mode, repeated letters). The filter does not reconcile that
// conflict: such a letter rejects every word.

package solver

import (
	"fmt"
	"sort"
)

// Constraints is the evidence gathered from all guesses in a session.
type Constraints struct {
	Excluded map[byte]struct{}
	Required map[byte]struct{}
	Pinned   map[int]byte
}

// NewConstraints returns an empty constraint set.
func NewConstraints() *Constraints {
	return &Constraints{
		Excluded: make(map[byte]struct{}),
		Required: make(map[byte]struct{}),
		Pinned:   make(map[int]byte),
	}
}

// Add folds one guess into the constraint set.
func (c *Constraints) Add(g Guess) error {
	if len(g.Word) != len(g.Result) {
		return fmt.Errorf("add %q: %w", g.Word, ErrInvalidLength)
	}
	for i := 0; i < len(g.Word); i++ {
		b := g.Word[i]
		switch g.Result[i] {
		case Correct:
			c.Pinned[i] = b
		case MisplacedLetter:
			c.Required[b] = struct{}{}
		default:
			c.Excluded[b] = struct{}{}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c *Constraints) Clone() *Constraints {
	out := NewConstraints()
	for b := range c.Excluded {
		out.Excluded[b] = struct{}{}
	}
	for b := range c.Required {
		out.Required[b] = struct{}{}
	}
	for i, b := range c.Pinned {
		out.Pinned[i] = b
	}
	return out
}

// Allows reports whether w is consistent with every constraint.
// A pinned position outside w yields ErrIndexOutOfRange.
func (c *Constraints) Allows(w Word) (bool, error) {
	for i := range c.Pinned {
		if i < 0 || i >= len(w) {
			return false, fmt.Errorf("pinned position %d in %q: %w", i, w, ErrIndexOutOfRange)
		}
	}
	for b := range c.Excluded {
		if contains(w, b) {
			return false, nil
		}
	}
	for b := range c.Required {
		if !contains(w, b) {
			return false, nil
		}
	}
	for i, b := range c.Pinned {
		if w[i] != b {
			return false, nil
		}
	}
	return true, nil
}

// Retain returns the words in dict that are consistent with c, preserving order.
// dict is not modified. On error the original slice is returned with the error.
func Retain(dict []Word, c *Constraints) ([]Word, error) {
	out := make([]Word, 0, len(dict))
	for _, w := range dict {
		ok, err := c.Allows(w)
		if err != nil {
			return dict, err
		}
		if ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// Conflicts lists letters that are both excluded and required, sorted.
func (c *Constraints) Conflicts() []byte {
	var out []byte
	for b := range c.Excluded {
		if _, ok := c.Required[b]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pattern renders pinned letters over length n, using '_' for open positions.
func (c *Constraints) Pattern(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '_'
		if p, ok := c.Pinned[i]; ok {
			b[i] = p
		}
	}
	return string(b)
}
