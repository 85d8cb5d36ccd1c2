package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeError = "error"

var (
	attempts = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "authgw_auth_attempts_total",
			Help: "Authentication attempts per backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)

	resolveDuration = promauto.NewHistogramVec( //nolint:gochecknoglobals
		prometheus.HistogramOpts{
			Name:    "authgw_directory_resolve_seconds",
			Help:    "Duration of directory resolutions per bind strategy.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
)

func observeAttempt(backend string, result Result, err error) {
	outcome := result.Outcome.String()
	if err != nil {
		outcome = outcomeError
	}

	attempts.WithLabelValues(backend, outcome).Inc()
}

func observeResolve(strategy string, start time.Time) {
	resolveDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
}
