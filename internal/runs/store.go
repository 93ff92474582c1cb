package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Run is one finished game as stored in the history.
type Run struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	FirstGuess string    `json:"firstGuess"`
	Mode       string    `json:"mode"`
	State      string    `json:"state"`
	Guesses    int       `json:"guesses"`
	Transcript []string  `json:"transcript"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Stats aggregates the history.
type Stats struct {
	Runs       int     `json:"runs"`
	Solved     int     `json:"solved"`
	AvgGuesses float64 `json:"avgGuesses"` // over solved runs
	MaxGuesses int     `json:"maxGuesses"` // over solved runs
}

// FromGame converts a finished game summary into a Run.
func FromGame(s game.Summary) Run {
	r := Run{
		ID:         s.ID,
		Target:     string(s.Target),
		Mode:       string(s.Mode),
		State:      string(s.State),
		Guesses:    len(s.Turns),
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
	for _, t := range s.Turns {
		r.Transcript = append(r.Transcript, string(t.Guess))
	}
	if len(r.Transcript) > 0 {
		r.FirstGuess = r.Transcript[0]
	}
	return r
}

// Store persists finished runs in SQLite.
type Store struct{ db *sql.DB }

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Insert records a run. Re-inserting an existing ID is ignored.
func (s *Store) Insert(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO runs
            (id, target, first_guess, mode, state, guesses, transcript, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Target, r.FirstGuess, r.Mode, r.State, r.Guesses,
		strings.Join(r.Transcript, " "),
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Get returns the run with the given game ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	out, err := s.query(ctx, `
        SELECT id, target, first_guess, mode, state, guesses, transcript, started_at, finished_at
        FROM runs
        WHERE id=?`, id)
	if err != nil {
		return Run{}, err
	}
	if len(out) == 0 {
		return Run{}, ErrNotFound
	}
	return out[0], nil
}

// Recent returns the latest runs, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx, `
        SELECT id, target, first_guess, mode, state, guesses, transcript, started_at, finished_at
        FROM runs
        ORDER BY finished_at DESC, id ASC
        LIMIT ?`, limit)
}

// ByTarget returns every run for one target word, fewest guesses first.
func (s *Store) ByTarget(ctx context.Context, target string) ([]Run, error) {
	return s.query(ctx, `
        SELECT id, target, first_guess, mode, state, guesses, transcript, started_at, finished_at
        FROM runs
        WHERE target=?
        ORDER BY guesses ASC, finished_at ASC`, strings.ToLower(target))
}

// Stats aggregates all runs.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var avg sql.NullFloat64
	var maxG sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(CASE WHEN state='solved' THEN 1 ELSE 0 END), 0),
               AVG(CASE WHEN state='solved' THEN guesses END),
               MAX(CASE WHEN state='solved' THEN guesses END)
        FROM runs`).Scan(&st.Runs, &st.Solved, &avg, &maxG)
	if err != nil {
		return Stats{}, err
	}
	st.AvgGuesses = avg.Float64
	st.MaxGuesses = int(maxG.Int64)
	return st, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var r Run
		var transcript, started, finished string
		if err := rows.Scan(&r.ID, &r.Target, &r.FirstGuess, &r.Mode, &r.State, &r.Guesses,
			&transcript, &started, &finished); err != nil {
			return nil, err
		}
		r.Transcript = strings.Fields(transcript)
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s: started_at: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("run %s: finished_at: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
