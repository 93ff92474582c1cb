// internal/game/engine.go
//
// Driver loop for a single solver game.
// Responsibilities:
//   - Create games with a scorer, a seeded selector and a fresh solver session.
//   - Play one guess at a time: select → score → record.
//   - Track state transitions: playing → solved/exhausted/lost/failed.
//
// Notes:
//   - The opening guess comes from Config.First, or the selector when empty.
//   - Solver errors end the game in StateFailed; the session is left as it was
//     before the failing guess.
//   - A Game serializes its own steps, so one game may be shared between
//     HTTP handlers. Exactly one Step or Play call observes the transition to a
//     finished state; later calls get ErrFinished.
//   - Letters that end up both excluded and required are logged at warn level
//     and reported in Summary.Conflicts.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrFinished is returned by Step once the game is over.
var ErrFinished = errors.New("game finished")

// New constructs a game from cfg.
func New(cfg Config) (*Game, error) {
	if len(cfg.Target) == 0 {
		return nil, fmt.Errorf("new game: empty target: %w", solver.ErrInvalidLength)
	}
	if cfg.First != "" && len(cfg.First) != len(cfg.Target) {
		return nil, fmt.Errorf("new game: first guess %q vs target: %w", cfg.First, solver.ErrInvalidLength)
	}
	if cfg.First == "" && len(cfg.Dictionary) == 0 {
		return nil, fmt.Errorf("new game: %w", solver.ErrEmptyCandidateSet)
	}
	mode := cfg.Mode
	if mode == "" {
		mode = solver.ModeNaive
	}
	src := cfg.Source
	if src == nil && cfg.Seed != 0 {
		src = rand.NewSource(cfg.Seed)
	}
	return &Game{
		ID:         uuid.NewString(),
		Target:     cfg.Target,
		Mode:       mode,
		MaxGuesses: cfg.MaxGuesses,
		StartedAt:  time.Now().UTC(),
		session:    solver.NewSession(cfg.Dictionary),
		scorer:     solver.Scorer{Mode: mode},
		selector:   solver.NewSelector(src),
		next:       cfg.First,
		state:      StatePlaying,
	}, nil
}

// Step plays exactly one guess.
func (g *Game) Step() (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.step()
}

// Play steps until the game finishes and returns the turns played by this call.
// It returns ErrFinished when the game was already over.
func (g *Game) Play() ([]Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Finished() {
		return nil, ErrFinished
	}
	var out []Turn
	for !g.state.Finished() {
		t, err := g.step()
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (g *Game) step() (Turn, error) {
	if g.state.Finished() {
		return Turn{}, ErrFinished
	}

	guess := g.next
	g.next = ""
	if guess == "" {
		w, err := g.selector.ChooseNext(g.session.Dictionary())
		if err != nil {
			return Turn{}, g.fail(err)
		}
		guess = w
	}

	result, err := g.scorer.Score(guess, g.Target)
	if err != nil {
		return Turn{}, g.fail(err)
	}
	if err := g.session.Record(solver.Guess{Word: guess, Result: result}); err != nil {
		return Turn{}, g.fail(err)
	}
	if c := g.session.Constraints().Conflicts(); len(c) > len(g.conflicts) {
		g.conflicts = string(c)
		log.Warn().Str("game", g.ID).Str("mode", string(g.Mode)).Str("letters", g.conflicts).
			Msg("letters both excluded and required; no candidate can match")
	}

	switch {
	case g.session.Solved():
		g.finish(StateSolved)
	case g.MaxGuesses > 0 && len(g.session.Guesses()) >= g.MaxGuesses:
		g.finish(StateLost)
	case g.session.Exhausted():
		g.finish(StateExhausted)
	}

	t := Turn{
		Number:    len(g.session.Guesses()),
		Guess:     guess,
		Result:    result,
		Rendered:  solver.Render(result),
		Remaining: g.session.Remaining(),
		State:     g.state,
	}
	g.turns = append(g.turns, t)
	return t, nil
}

func (g *Game) finish(s State) {
	g.state = s
	g.FinishedAt = time.Now().UTC()
}

func (g *Game) fail(err error) error {
	g.err = err
	g.finish(StateFailed)
	return err
}

// State reports the current state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Err is the error that ended the game, if any.
func (g *Game) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Turns returns a copy of all turns played so far.
func (g *Game) Turns() []Turn {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Turn(nil), g.turns...)
}

// Summary returns a serializable snapshot. The target is only included
// after the game has finished.
func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Summary{
		ID:        g.ID,
		State:     g.state,
		Mode:      g.Mode,
		Length:    len(g.Target),
		Remaining: g.session.Remaining(),
		Pattern:   g.session.Constraints().Pattern(len(g.Target)),
		Turns:     append([]Turn{}, g.turns...),
		Conflicts: g.conflicts,
		StartedAt: g.StartedAt,
	}
	if g.state.Finished() {
		s.Target = g.Target
		s.FinishedAt = g.FinishedAt
	}
	if g.err != nil {
		s.Error = g.err.Error()
	}
	return s
}
