// cli.go
//
// Command-line entry points.
//   - solve: play one game against a given (or daily) target and print each guess.
//   - daily: print today's puzzle date and index.
//   - serve: run the HTTP solver API.
//   - token: mint a bearer token for the API.
//
// Flags override environment variables, which may come from a .env file:
//   LOG_LEVEL, LOG_FORMAT, WORDS_FILE, WORD_LENGTH, SCORING_MODE, DAILY_SALT,
//   DB_PATH, PORT, JWT_SECRET, JWT_EXPIRES_DAYS.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/runs"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// settings are the values shared by every command.
type settings struct {
	logLevel  string
	wordsFile string
	length    int
	mode      string
	salt      string
	dbPath    string
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Solve word-guessing puzzles by narrowing a candidate list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			s.fromEnv(cmd)
			setupLogging(s.logLevel, cmd.ErrOrStderr())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&s.wordsFile, "words", "w", "", "word list file, one word per line (default: built-in list)")
	pf.IntVarP(&s.length, "length", "n", 5, "word length")
	pf.StringVarP(&s.mode, "mode", "m", string(solver.ModeNaive), "scoring mode: naive or strict")
	pf.StringVar(&s.salt, "salt", "local_dev_salt", "salt for the daily puzzle")
	pf.StringVar(&s.dbPath, "db", "", "SQLite file for run history (empty disables it for solve)")

	root.AddCommand(newSolveCmd(s), newDailyCmd(s), newServeCmd(s), newTokenCmd())
	return root
}

// fromEnv fills settings not given on the command line from the environment.
func (s *settings) fromEnv(cmd *cobra.Command) {
	f := cmd.Flags()
	if !f.Changed("log-level") {
		s.logLevel = getEnv("LOG_LEVEL", s.logLevel)
	}
	if !f.Changed("words") {
		s.wordsFile = getEnv("WORDS_FILE", s.wordsFile)
	}
	if !f.Changed("length") {
		s.length = envInt("WORD_LENGTH", s.length)
	}
	if !f.Changed("mode") {
		s.mode = getEnv("SCORING_MODE", s.mode)
	}
	if !f.Changed("salt") {
		s.salt = getEnv("DAILY_SALT", s.salt)
	}
	if !f.Changed("db") {
		s.dbPath = getEnv("DB_PATH", s.dbPath)
	}
}

// setupLogging configures the global zerolog logger.
func setupLogging(level string, w io.Writer) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if os.Getenv("LOG_FORMAT") == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
}

// dictionary loads the configured word list.
func (s *settings) dictionary() ([]solver.Word, string, error) {
	return words.Resolve(s.wordsFile, s.length)
}

// ------------------------------- solve --------------------------------------

func newSolveCmd(s *settings) *cobra.Command {
	var (
		target     string
		first      string
		useDaily   bool
		seed       int64
		maxGuesses int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Play one game against a target word",
		Example: `  wordle-solver solve --target skirt --first shirt
  wordle-solver solve --daily --words words.txt --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" && !useDaily {
				return errors.New("either --target or --daily is required")
			}
			mode, err := solver.ParseMode(s.mode)
			if err != nil {
				return err
			}
			dict, source, err := s.dictionary()
			if err != nil {
				return fmt.Errorf("failed to load word list: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Read %d words from %s\n", len(dict), source)

			var tw solver.Word
			if useDaily {
				p, err := daily.For(time.Now(), s.salt, dict)
				if err != nil {
					return err
				}
				tw = p.Target
				fmt.Fprintf(out, "Daily puzzle %s #%d\n", p.Date, p.Index)
			} else if tw, err = words.Normalize(target, s.length); err != nil {
				return err
			}
			var fw solver.Word
			if first != "" {
				if fw, err = words.Normalize(first, s.length); err != nil {
					return err
				}
			}
			if !words.Contains(dict, tw) {
				log.Warn().Str("target", string(tw)).Msg("target not in word list; the solver cannot find it")
			}

			g, err := game.New(game.Config{
				Dictionary: dict, Target: tw, First: fw, Mode: mode, Seed: seed, MaxGuesses: maxGuesses,
			})
			if err != nil {
				return err
			}
			return playAndReport(cmd.Context(), out, g, s.dbPath)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&target, "target", "t", "", "target word")
	f.StringVarP(&first, "first", "f", "", "opening guess (default: chosen from the list)")
	f.BoolVar(&useDaily, "daily", false, "use today's puzzle as the target")
	f.Int64Var(&seed, "seed", 0, "random seed for reproducible guesses (0 = time)")
	f.IntVar(&maxGuesses, "max", 0, "give up after this many guesses (0 = unlimited)")
	return cmd
}

// playAndReport plays g to the end, printing one line per guess, and records
// the run when dbPath is set.
func playAndReport(ctx context.Context, out io.Writer, g *game.Game, dbPath string) error {
	for !g.State().Finished() {
		t, err := g.Step()
		if err != nil {
			log.Error().Err(err).Str("game", g.ID).Msg("game failed")
			break
		}
		log.Debug().Str("game", g.ID).Str("guess", string(t.Guess)).Str("result", t.Rendered).
			Int("remaining", t.Remaining).Msg("guess")
		fmt.Fprintf(out, "%2d  %s  %s  %d candidates left\n", t.Number, t.Guess, t.Rendered, t.Remaining)
	}

	sum := g.Summary()
	switch sum.State {
	case game.StateSolved:
		fmt.Fprintf(out, "Solved %q in %d guesses\n", sum.Target, len(sum.Turns))
	case game.StateLost:
		fmt.Fprintf(out, "Gave up after %d guesses; target was %q\n", len(sum.Turns), sum.Target)
	case game.StateExhausted:
		fmt.Fprintf(out, "Ran out of candidates after %d guesses; target was %q\n", len(sum.Turns), sum.Target)
	}

	if dbPath != "" {
		rs, err := runs.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open run history: %w", err)
		}
		defer rs.Close()
		if err := rs.Insert(ctx, runs.FromGame(sum)); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}
	return g.Err()
}

// ------------------------------- daily --------------------------------------

func newDailyCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show today's puzzle date and index",
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, _, err := s.dictionary()
			if err != nil {
				return fmt.Errorf("failed to load word list: %w", err)
			}
			p, err := daily.For(time.Now(), s.salt, dict)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d of %d\n", p.Date, p.Index, len(dict))
			return nil
		},
	}
}

// ------------------------------- serve --------------------------------------

func newServeCmd(s *settings) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = getEnv("PORT", port)
			}
			mode, err := solver.ParseMode(s.mode)
			if err != nil {
				return err
			}
			dict, source, err := s.dictionary()
			if err != nil {
				return fmt.Errorf("failed to load word list: %w", err)
			}
			log.Info().Int("words", len(dict)).Str("source", source).Msg("word list loaded")

			dbPath := s.dbPath
			if dbPath == "" {
				dbPath = "./data/solver.db"
			}
			rs, err := runs.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer rs.Close()

			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				log.Warn().Msg("JWT_SECRET not set; API is open")
			}
			srv := httpserver.New(store.NewMemoryStore(), rs, httpserver.Options{
				Dictionary: dict,
				Length:     s.length,
				Mode:       mode,
				DailySalt:  s.salt,
				JWTSecret:  secret,
			})
			log.Info().Str("port", port).Str("mode", string(mode)).Msg("starting solver server")
			return srv.Start(":" + port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "5175", "listen port")
	return cmd
}

// ------------------------------- token --------------------------------------

func newTokenCmd() *cobra.Command {
	var (
		subject string
		days    int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API (uses JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = envInt("JWT_EXPIRES_DAYS", days)
			}
			tok, exp, err := httpserver.SignToken(os.Getenv("JWT_SECRET"), subject, time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}
			log.Info().Str("subject", subject).Time("expires", exp).Msg("token issued")
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().IntVar(&days, "days", 14, "validity in days")
	return cmd
}
