// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints: create a game, step one guess, play to the end, inspect.
//   - Run history endpoints backed by the SQLite run store.
//   - Daily puzzle endpoint (date + index, never the target).
//
// Notes:
//   - When Options.JWTSecret is set every /games, /runs and /daily route
//     requires an HS256 bearer token.
//   - Finished games are recorded in the run store (best effort) and dropped
//     from the live store; GET /games/{id} then answers from the run history.
//   - Games idle longer than Options.GameTTL are pruned by Start.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/runs"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Options configures a Server.
type Options struct {
	Dictionary []solver.Word      // candidate list shared by all games (read-only)
	Length     int                // word length of Dictionary
	Mode       solver.ScoringMode // default scoring mode
	DailySalt  string             // salt for the daily puzzle
	JWTSecret  string             // empty disables auth
	GameTTL    time.Duration      // live games older than this are pruned, default 1h
	Now        func() time.Time   // clock, defaults to time.Now
}

// Server bundles router, live game store and run history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	runs    *runs.Store
	opts    Options
	metrics *metrics
}

// New constructs a Server, installs middleware, and registers routes.
// rs may be nil, in which case finished games are not persisted.
func New(st store.Store, rs *runs.Store, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = solver.ModeNaive
	}
	if opts.GameTTL <= 0 {
		opts.GameTTL = time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, runs: rs, opts: opts, metrics: newMetrics()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/metrics","POST /games","POST /games/{id}/step","POST /games/{id}/play","GET /runs","GET /runs/stats","GET /daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "words": len(s.opts.Dictionary), "games": s.store.Len()})
	})
	s.r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/games", s.handleNewGame)
		r.Get("/games/{id}", s.handleGetGame)
		r.Post("/games/{id}/step", s.handleStep)
		r.Post("/games/{id}/play", s.handlePlay)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/stats", s.handleRunStats)
		r.Get("/daily", s.handleDaily)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr and prunes abandoned games in the background.
func (s *Server) Start(addr string) error {
	ticker := time.NewTicker(min(s.opts.GameTTL, time.Minute))
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			s.prune()
		}
	}()
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}

// prune drops live games started more than GameTTL ago.
func (s *Server) prune() int {
	n := s.store.Prune(context.Background(), s.opts.Now().Add(-s.opts.GameTTL))
	if n > 0 {
		log.Info().Int("games", n).Dur("ttl", s.opts.GameTTL).Msg("pruned idle games")
	}
	return n
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAMES --------------------------------------

// newGameReq is the payload for POST /games.
type newGameReq struct {
	Target     string `json:"target"`     // required unless daily
	Daily      bool   `json:"daily"`      // use today's puzzle as target
	First      string `json:"first"`      // optional opening guess
	Mode       string `json:"mode"`       // "naive" | "strict"; server default when empty
	Seed       int64  `json:"seed"`       // optional, for reproducible selection
	MaxGuesses int    `json:"maxGuesses"` // 0 = unlimited
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	mode := s.opts.Mode
	if req.Mode != "" {
		m, err := solver.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	var target solver.Word
	if req.Daily {
		p, err := daily.For(s.opts.Now(), s.opts.DailySalt, s.opts.Dictionary)
		if err != nil {
			writeSolverError(w, err)
			return
		}
		target = p.Target
	} else {
		t, err := words.Normalize(req.Target, s.opts.Length)
		if err != nil {
			writeSolverError(w, err)
			return
		}
		target = t
	}

	var first solver.Word
	if req.First != "" {
		f, err := words.Normalize(req.First, s.opts.Length)
		if err != nil {
			writeSolverError(w, err)
			return
		}
		first = f
	}
	if !words.Contains(s.opts.Dictionary, target) {
		log.Warn().Bool("daily", req.Daily).Msg("target not in dictionary; game cannot be solved")
	}

	g, err := game.New(game.Config{
		Dictionary: s.opts.Dictionary,
		Target:     target,
		First:      first,
		Mode:       mode,
		Seed:       req.Seed,
		MaxGuesses: req.MaxGuesses,
	})
	if err != nil {
		writeSolverError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.gamesStarted.Inc()
	log.Info().Str("game", g.ID).Str("mode", string(mode)).Bool("daily", req.Daily).
		Str("subject", subject(r)).Msg("game created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g.Summary())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if g, err := s.store.Get(r.Context(), id); err == nil {
		_ = json.NewEncoder(w).Encode(g.Summary())
		return
	}
	if run, ok := s.recorded(r, id); ok {
		_ = json.NewEncoder(w).Encode(run)
		return
	}
	writeError(w, http.StatusNotFound, "not_found")
}

// stepRes is returned by POST /games/{id}/step.
type stepRes struct {
	Turn  game.Turn  `json:"turn"`
	State game.State `json:"state"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	t, err := g.Step()
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	// Any other error ended the game in this call.
	if err != nil {
		s.finished(r, g)
		writeSolverError(w, err)
		return
	}
	s.observe(g.ID, t)
	if t.State.Finished() {
		s.finished(r, g)
	}
	_ = json.NewEncoder(w).Encode(stepRes{Turn: t, State: t.State})
}

// playRes is returned by POST /games/{id}/play.
type playRes struct {
	Turns []game.Turn  `json:"turns"`
	Game  game.Summary `json:"game"`
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	turns, err := g.Play()
	if errors.Is(err, game.ErrFinished) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	for _, t := range turns {
		s.observe(g.ID, t)
	}
	s.finished(r, g)
	if err != nil {
		writeSolverError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(playRes{Turns: turns, Game: g.Summary()})
}

// lookup resolves {id} to a live game. Games that already finished and were
// recorded get a 409, unknown IDs a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if err == nil {
		return g, true
	}
	if _, ok := s.recorded(r, id); ok {
		writeError(w, http.StatusConflict, game.ErrFinished.Error())
	} else {
		writeError(w, http.StatusNotFound, "not_found")
	}
	return nil, false
}

// recorded looks up a finished game in the run history.
func (s *Server) recorded(r *http.Request, id string) (runs.Run, bool) {
	if s.runs == nil {
		return runs.Run{}, false
	}
	run, err := s.runs.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, runs.ErrNotFound) {
			log.Warn().Err(err).Str("game", id).Msg("lookup run")
		}
		return runs.Run{}, false
	}
	return run, true
}

// observe logs and counts one played turn.
func (s *Server) observe(id string, t game.Turn) {
	s.metrics.guesses.Inc()
	s.metrics.remaining.Observe(float64(t.Remaining))
	log.Debug().Str("game", id).Int("turn", t.Number).Str("guess", string(t.Guess)).
		Str("result", t.Rendered).Int("remaining", t.Remaining).Msg("guess")
}

// finished records a finished game in metrics and the run history and drops
// it from the live store. Callers invoke it once, from the request whose Step
// or Play ended the game.
func (s *Server) finished(r *http.Request, g *game.Game) {
	sum := g.Summary()
	if !sum.State.Finished() {
		return
	}
	s.metrics.gamesFinished.WithLabelValues(string(sum.State)).Inc()
	if sum.State == game.StateSolved {
		s.metrics.guessesPerGame.Observe(float64(len(sum.Turns)))
	}
	log.Info().Str("game", sum.ID).Str("state", string(sum.State)).Int("guesses", len(sum.Turns)).Msg("game finished")

	if s.runs != nil {
		if err := s.runs.Insert(r.Context(), runs.FromGame(sum)); err != nil {
			log.Warn().Err(err).Str("game", sum.ID).Msg("insert run")
		}
	}
	if err := s.store.Delete(r.Context(), sum.ID); err != nil {
		log.Warn().Err(err).Str("game", sum.ID).Msg("drop finished game")
	}
}

// ------------------------------- RUNS --------------------------------------

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		_ = json.NewEncoder(w).Encode([]runs.Run{})
		return
	}
	var (
		out []runs.Run
		err error
	)
	if target := r.URL.Query().Get("target"); target != "" {
		out, err = s.runs.ByTarget(r.Context(), target)
	} else {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		out, err = s.runs.Recent(r.Context(), limit)
	}
	if err != nil {
		log.Error().Err(err).Msg("query runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleRunStats(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		_ = json.NewEncoder(w).Encode(runs.Stats{})
		return
	}
	st, err := s.runs.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("run stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// ------------------------------- DAILY -------------------------------------

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	p, err := daily.For(s.opts.Now(), s.opts.DailySalt, s.opts.Dictionary)
	if err != nil {
		writeSolverError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

// ------------------------------- errors ------------------------------------

// writeError writes {"error": msg} with status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeSolverError maps solver errors onto HTTP statuses.
func writeSolverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solver.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, solver.ErrEmptyCandidateSet):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, solver.ErrIndexOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
