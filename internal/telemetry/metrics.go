package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transforms = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketcsv",
		Name:      "transform_total",
		Help:      "Status transformations by policy and outcome.",
	}, []string{"policy", "outcome"})

	rowsAssigned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketcsv",
		Name:      "rows_assigned_total",
		Help:      "Rows written by the transformer, by resulting status.",
	}, []string{"policy", "status"})

	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticketcsv",
		Name:      "pipeline_runs_total",
		Help:      "Automation runs by outcome (ok, empty, error).",
	}, []string{"outcome"})

	runSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ticketcsv",
		Name:      "pipeline_run_seconds",
		Help:      "Wall time of one automation run.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)

// ObserveTransform records one transformation and, on success, the status
// tally of its output.
func ObserveTransform(policy, outcome string, counts map[string]int) {
	transforms.WithLabelValues(policy, outcome).Inc()
	for st, n := range counts {
		rowsAssigned.WithLabelValues(policy, st).Add(float64(n))
	}
}

func ObserveRun(outcome string, took time.Duration) {
	runs.WithLabelValues(outcome).Inc()
	runSeconds.Observe(took.Seconds())
}

// NewServer returns the /metrics listener; the engine owns its lifecycle.
func NewServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
