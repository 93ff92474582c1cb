package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestParse_NormalizesAndFilters(t *testing.T) {
	in := "# comment\nHello\n  shirt \n\nskirt\nhello\nab1de\ntoolong\nfour\n"
	got, err := Parse(strings.NewReader(in), 5)
	require.NoError(t, err)
	assert.Equal(t, []solver.Word{"hello", "shirt", "skirt"}, got)
}

func TestParse_OtherLength(t *testing.T) {
	got, err := Parse(strings.NewReader("four\nfive5\nword\n"), 4)
	require.NoError(t, err)
	assert.Equal(t, []solver.Word{"four", "word"}, got)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing\n"), 5)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse(strings.NewReader("hello\n"), 0)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\nslate\n"), 0o644))

	got, err := Load(path, 5)
	require.NoError(t, err)
	assert.Equal(t, []solver.Word{"crane", "slate"}, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), 5)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	got, err := Default(5)
	require.NoError(t, err)
	assert.Greater(t, len(got), 100)
	assert.True(t, Contains(got, "skirt"))
	for _, w := range got {
		assert.Len(t, string(w), 5)
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("abcd\nefgh\n"), 0o644))

	got, source, err := Resolve(path, 4)
	require.NoError(t, err)
	assert.Equal(t, []solver.Word{"abcd", "efgh"}, got)
	assert.Equal(t, path, source)

	got, source, err = Resolve("", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.Equal(t, "built-in list", source)

	_, _, err = Resolve(filepath.Join(t.TempDir(), "missing"), 5)
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	list := []solver.Word{"hello", "shirt"}
	assert.True(t, Contains(list, "shirt"))
	assert.False(t, Contains(list, "skirt"))
	assert.False(t, Contains(nil, "skirt"))
}

func TestNormalize(t *testing.T) {
	w, err := Normalize(" SKIRT ", 5)
	require.NoError(t, err)
	assert.Equal(t, solver.Word("skirt"), w)

	_, err = Normalize("skirts", 5)
	assert.ErrorIs(t, err, solver.ErrInvalidLength)

	_, err = Normalize("sk1rt", 5)
	assert.ErrorIs(t, err, solver.ErrInvalidLength)
}
