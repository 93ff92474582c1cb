package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestPlay_ThreeWordScenario(t *testing.T) {
	g, err := New(Config{
		Dictionary: []solver.Word{"hello", "shirt", "skirt"},
		Target:     "skirt",
		First:      "shirt",
		Seed:       1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)

	turns, err := g.Play()
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, solver.Word("shirt"), turns[0].Guess)
	assert.Equal(t, []solver.Correctness{solver.Correct, solver.Absent, solver.Correct, solver.Correct, solver.Correct}, turns[0].Result)
	assert.Equal(t, 1, turns[0].Remaining)
	assert.Equal(t, StatePlaying, turns[0].State)

	assert.Equal(t, solver.Word("skirt"), turns[1].Guess)
	assert.Equal(t, StateSolved, turns[1].State)
	assert.Equal(t, StateSolved, g.State())
	assert.False(t, g.FinishedAt.IsZero())
}

func TestStep_AfterFinish(t *testing.T) {
	g, err := New(Config{Dictionary: []solver.Word{"skirt"}, Target: "skirt", First: "skirt"})
	require.NoError(t, err)

	turn, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, StateSolved, turn.State)
	assert.Equal(t, solver.GreenSquare+solver.GreenSquare+solver.GreenSquare+solver.GreenSquare+solver.GreenSquare, turn.Rendered)

	_, err = g.Step()
	assert.ErrorIs(t, err, ErrFinished)
}

func TestPlay_Exhausted(t *testing.T) {
	// The target is missing from the dictionary.
	g, err := New(Config{
		Dictionary: []solver.Word{"hello", "shirt"},
		Target:     "skirt",
		First:      "shirt",
	})
	require.NoError(t, err)

	turns, err := g.Play()
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, StateExhausted, g.State())
	assert.Equal(t, solver.Word("skirt"), g.Summary().Target)
}

func TestPlay_MaxGuesses(t *testing.T) {
	g, err := New(Config{
		Dictionary: []solver.Word{"hello", "shirt", "skirt"},
		Target:     "skirt",
		First:      "shirt",
		MaxGuesses: 1,
	})
	require.NoError(t, err)

	_, err = g.Play()
	require.NoError(t, err)
	assert.Equal(t, StateLost, g.State())
	assert.Len(t, g.Turns(), 1)
}

func TestPlay_SelectsOpeningGuess(t *testing.T) {
	dict := []solver.Word{"crane", "slate", "trace", "crate", "react", "cater", "caret", "heart", "shirt", "skirt"}
	g, err := New(Config{Dictionary: dict, Target: "trace", Seed: 3})
	require.NoError(t, err)

	turns, err := g.Play()
	require.NoError(t, err)
	require.NotEmpty(t, turns)
	assert.Contains(t, dict, turns[0].Guess)
	assert.Equal(t, StateSolved, g.State())
	assert.Equal(t, solver.Word("trace"), turns[len(turns)-1].Guess)
}

func TestPlay_SeedIsReproducible(t *testing.T) {
	dict := []solver.Word{"crane", "slate", "trace", "crate", "react", "cater", "caret", "heart", "shirt", "skirt", "smirt"}
	play := func() []solver.Word {
		g, err := New(Config{Dictionary: dict, Target: "caret", Seed: 99})
		require.NoError(t, err)
		turns, err := g.Play()
		require.NoError(t, err)
		var out []solver.Word
		for _, tn := range turns {
			out = append(out, tn.Guess)
		}
		return out
	}
	assert.Equal(t, play(), play())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Dictionary: []solver.Word{"skirt"}})
	assert.ErrorIs(t, err, solver.ErrInvalidLength)

	_, err = New(Config{Dictionary: []solver.Word{"skirt"}, Target: "skirt", First: "shirts"})
	assert.ErrorIs(t, err, solver.ErrInvalidLength)

	_, err = New(Config{Target: "skirt"})
	assert.ErrorIs(t, err, solver.ErrEmptyCandidateSet)
}

func TestStep_SolverErrorFailsGame(t *testing.T) {
	// Dictionary words shorter than the target cannot satisfy pinned letters.
	g, err := New(Config{Dictionary: []solver.Word{"abc"}, Target: "abcde", First: "abcdx"})
	require.NoError(t, err)

	_, err = g.Step()
	assert.ErrorIs(t, err, solver.ErrIndexOutOfRange)
	assert.Equal(t, StateFailed, g.State())
	assert.ErrorIs(t, g.Err(), solver.ErrIndexOutOfRange)

	s := g.Summary()
	assert.NotEmpty(t, s.Error)
	assert.Empty(t, s.Turns)
	assert.Equal(t, 1, s.Remaining)
}

func TestSummary_HidesTargetWhilePlaying(t *testing.T) {
	g, err := New(Config{Dictionary: []solver.Word{"hello", "shirt", "skirt"}, Target: "skirt", First: "shirt"})
	require.NoError(t, err)
	_, err = g.Step()
	require.NoError(t, err)

	s := g.Summary()
	assert.Equal(t, StatePlaying, s.State)
	assert.Empty(t, s.Target)
	assert.Equal(t, "s_irt", s.Pattern)
	assert.Equal(t, 5, s.Length)
	assert.Equal(t, solver.ModeNaive, s.Mode)
}

func TestPlay_AfterFinish(t *testing.T) {
	g, err := New(Config{Dictionary: []solver.Word{"skirt"}, Target: "skirt", First: "skirt"})
	require.NoError(t, err)

	turns, err := g.Play()
	require.NoError(t, err)
	assert.Len(t, turns, 1)

	turns, err = g.Play()
	assert.ErrorIs(t, err, ErrFinished)
	assert.Empty(t, turns)
}

// TestPlay_StrictConflictReported checks that a letter scored both absent and
// present is surfaced in the summary when it empties the candidates.
func TestPlay_StrictConflictReported(t *testing.T) {
	g, err := New(Config{
		Dictionary: []solver.Word{"abide", "aside"},
		Target:     "abide",
		First:      "speed",
		Mode:       solver.ModeStrict,
	})
	require.NoError(t, err)

	_, err = g.Play()
	require.NoError(t, err)
	s := g.Summary()
	assert.Equal(t, StateExhausted, s.State)
	assert.Equal(t, "e", s.Conflicts)
}

func TestSummary_NoConflictInNaiveMode(t *testing.T) {
	g, err := New(Config{Dictionary: []solver.Word{"abide", "aside"}, Target: "abide", First: "speed"})
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)
	assert.Empty(t, g.Summary().Conflicts)
	assert.Equal(t, StateSolved, g.State())
}
