package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the solver counters. Each Server owns its registry so tests
// can build many servers in one process.
type metrics struct {
	reg            *prometheus.Registry
	gamesStarted   prometheus.Counter
	gamesFinished  *prometheus.CounterVec
	guesses        prometheus.Counter
	guessesPerGame prometheus.Histogram
	remaining      prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &metrics{
		reg: reg,
		gamesStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "solver_games_started_total",
			Help: "Games created through the API",
		}),
		gamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "solver_games_finished_total",
			Help: "Finished games by final state",
		}, []string{"state"}),
		guesses: f.NewCounter(prometheus.CounterOpts{
			Name: "solver_guesses_total",
			Help: "Guesses played across all games",
		}),
		guessesPerGame: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "solver_guesses_per_game",
			Help:    "Guesses needed by finished games",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
		remaining: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "solver_candidates_remaining",
			Help:    "Candidate dictionary size after each guess",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
