// internal/game/types.go
//
// Core type definitions for the solver game driver.
// Defines:
//   - State: coarse lifecycle of a game (playing/solved/exhausted/lost/failed).
//   - Config: inputs for a new game.
//   - Turn: one played guess as reported to callers.
//   - Game: a solver session bound to a target word.

package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// State is the lifecycle of a game.
type State string

const (
	StatePlaying   State = "playing"
	StateSolved    State = "solved"
	StateExhausted State = "exhausted" // candidates ran out before the target was guessed
	StateLost      State = "lost"      // MaxGuesses reached
	StateFailed    State = "failed"    // a solver error ended the game
)

// Finished reports whether no further guesses will be played.
func (s State) Finished() bool { return s != StatePlaying }

// Config describes a new game.
type Config struct {
	Dictionary []solver.Word      // candidate words; copied by the session
	Target     solver.Word        // word to find
	First      solver.Word        // opening guess; chosen by the selector when empty
	Mode       solver.ScoringMode // naive when empty
	MaxGuesses int                // 0 means unlimited
	Seed       int64              // 0 means time-seeded
	Source     rand.Source        // overrides Seed when set
}

// Turn is one guess and its outcome.
type Turn struct {
	Number    int                  `json:"number"`
	Guess     solver.Word          `json:"guess"`
	Result    []solver.Correctness `json:"result"`
	Rendered  string               `json:"rendered"`
	Remaining int                  `json:"remaining"`
	State     State                `json:"state"`
}

// Game holds one solver session against a known target.
type Game struct {
	mu sync.Mutex

	ID         string
	Target     solver.Word
	Mode       solver.ScoringMode
	MaxGuesses int
	StartedAt  time.Time
	FinishedAt time.Time

	session   *solver.Session
	scorer    solver.Scorer
	selector  *solver.Selector
	next      solver.Word
	state     State
	err       error
	turns     []Turn
	conflicts string // letters both excluded and required
}

// Summary is a point-in-time copy of a game, safe to serialize.
type Summary struct {
	ID         string             `json:"id"`
	State      State              `json:"state"`
	Mode       solver.ScoringMode `json:"mode"`
	Length     int                `json:"length"`
	Remaining  int                `json:"remaining"`
	Pattern    string             `json:"pattern"`
	Turns      []Turn             `json:"turns"`
	Target     solver.Word        `json:"target,omitempty"` // revealed once finished
	Error      string             `json:"error,omitempty"`
	Conflicts  string             `json:"conflicts,omitempty"` // letters both excluded and required
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt,omitempty"`
}
