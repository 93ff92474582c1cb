// Package daily picks a deterministic puzzle target for a calendar date.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Puzzle is the target chosen for one date.
type Puzzle struct {
	Date   string      `json:"date"`
	Index  int         `json:"index"`
	Target solver.Word `json:"-"`
}

// For picks the puzzle for date from list. It fails on an empty list.
func For(date time.Time, salt string, list []solver.Word) (Puzzle, error) {
	if len(list) == 0 {
		return Puzzle{}, solver.ErrEmptyCandidateSet
	}
	idx := WordIndex(date, salt, len(list))
	return Puzzle{Date: DateKey(date), Index: idx, Target: list[idx]}, nil
}
