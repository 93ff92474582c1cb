// internal/words/words.go
//
// Word list loading for the solver.
//
// Responsibilities:
//   - Read one word per line from a file, a reader, or the embedded default list.
//   - Normalize entries (trim, lowercase) and keep only a–z words of the
//     requested length, dropping duplicates while preserving order.
//   - Resolve the configured list: a file when a path is given (WORDS_FILE or
//     --words), otherwise the embedded default.
//
// Lines that are blank or start with '#' are skipped.

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// --- embedded fallback (ensures the solver runs without a configured list) ---

//go:embed default_words.txt
var embeddedWords string

// ErrEmpty is returned when no usable word survives normalization.
var ErrEmpty = errors.New("words: list is empty")

// Parse reads words from r, keeping only lowercase a–z words of exactly length letters.
func Parse(r io.Reader, length int) ([]solver.Word, error) {
	if length <= 0 {
		return nil, fmt.Errorf("words: invalid length %d", length)
	}
	seen := make(map[string]struct{})
	var out []solver.Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, solver.Word(w))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Load reads a word file from disk.
func Load(path string, length int) ([]solver.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	list, err := Parse(f, length)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return list, nil
}

// Default returns the embedded word list filtered to length.
func Default(length int) ([]solver.Word, error) {
	return Parse(strings.NewReader(embeddedWords), length)
}

// Resolve loads path when set, otherwise the embedded default list. It also
// returns a description of where the words came from.
func Resolve(path string, length int) ([]solver.Word, string, error) {
	if path != "" {
		list, err := Load(path, length)
		return list, path, err
	}
	list, err := Default(length)
	return list, "built-in list", err
}

// Normalize lowercases and trims a user-supplied word and checks it is a–z of
// the given length.
func Normalize(s string, length int) (solver.Word, error) {
	w := strings.TrimSpace(strings.ToLower(s))
	if len(w) != length || !isAlpha(w) {
		return "", fmt.Errorf("word %q: want %d letters a-z: %w", s, length, solver.ErrInvalidLength)
	}
	return solver.Word(w), nil
}

// Contains reports whether w is in list.
func Contains(list []solver.Word, w solver.Word) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
