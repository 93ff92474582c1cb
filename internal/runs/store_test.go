package runs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func run(id, target, state string, guesses int, finished time.Time) Run {
	tr := make([]string, guesses)
	for i := range tr {
		tr[i] = target
	}
	return Run{
		ID: id, Target: target, FirstGuess: target, Mode: "naive", State: state,
		Guesses: guesses, Transcript: tr,
		StartedAt: finished.Add(-time.Second), FinishedAt: finished,
	}
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestInsertAndRecent(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	require.NoError(t, st.Insert(ctx, run("a", "skirt", "solved", 2, base)))
	require.NoError(t, st.Insert(ctx, run("b", "crane", "exhausted", 3, base.Add(time.Minute))))
	require.NoError(t, st.Insert(ctx, run("a", "other", "solved", 9, base)), "duplicate IDs are ignored")

	got, err := st.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "skirt", got[1].Target)
	assert.Equal(t, []string{"skirt", "skirt"}, got[1].Transcript)
	assert.True(t, base.Equal(got[1].FinishedAt))
}

func TestByTarget(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Insert(ctx, run("a", "skirt", "solved", 4, base)))
	require.NoError(t, st.Insert(ctx, run("b", "skirt", "solved", 2, base)))
	require.NoError(t, st.Insert(ctx, run("c", "crane", "solved", 1, base)))

	got, err := st.ByTarget(ctx, "SKIRT")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	empty, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)

	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Insert(ctx, run("a", "skirt", "solved", 2, base)))
	require.NoError(t, st.Insert(ctx, run("b", "crane", "solved", 4, base)))
	require.NoError(t, st.Insert(ctx, run("c", "trace", "exhausted", 7, base)))

	got, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Runs)
	assert.Equal(t, 2, got.Solved)
	assert.InDelta(t, 3.0, got.AvgGuesses, 1e-9)
	assert.Equal(t, 4, got.MaxGuesses)
}

func TestFromGame(t *testing.T) {
	g, err := game.New(game.Config{
		Dictionary: []solver.Word{"hello", "shirt", "skirt"},
		Target:     "skirt",
		First:      "shirt",
		Seed:       1,
	})
	require.NoError(t, err)
	_, err = g.Play()
	require.NoError(t, err)

	r := FromGame(g.Summary())
	assert.Equal(t, g.ID, r.ID)
	assert.Equal(t, "skirt", r.Target)
	assert.Equal(t, "shirt", r.FirstGuess)
	assert.Equal(t, "solved", r.State)
	assert.Equal(t, 2, r.Guesses)
	assert.Equal(t, []string{"shirt", "skirt"}, r.Transcript)
	assert.False(t, r.FinishedAt.IsZero())
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Insert(ctx, run("a", "skirt", "solved", 2, base)))

	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "skirt", got.Target)
	assert.True(t, base.Equal(got.FinishedAt))

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecent_CorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	_, err := st.db.ExecContext(ctx, `
        INSERT INTO runs (id, target, first_guess, mode, state, guesses, transcript, started_at, finished_at)
        VALUES ('x', 'skirt', 'skirt', 'naive', 'solved', 1, 'skirt', 'yesterday', 'today')`)
	require.NoError(t, err)

	_, err = st.Recent(ctx, 10)
	assert.ErrorContains(t, err, "started_at")
}
