package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Config{Dictionary: []solver.Word{"skirt"}, Target: "skirt", First: "skirt"})
	require.NoError(t, err)
	return g
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := newGame(t)

	require.NoError(t, st.Save(ctx, g))
	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, g.ID))
	_, err = st.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, st.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	games := make([]*game.Game, 16)
	for i := range games {
		games[i] = newGame(t)
	}
	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(g *game.Game) {
			defer wg.Done()
			_ = st.Save(ctx, g)
			_, _ = st.Get(ctx, g.ID)
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 16, st.Len())
}

func TestMemoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	old, fresh := newGame(t), newGame(t)
	old.StartedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, fresh))

	assert.Equal(t, 1, st.Prune(ctx, time.Now().Add(-time.Hour)))
	assert.Equal(t, 1, st.Len())
	_, err := st.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
