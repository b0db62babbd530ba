// Package metrics is a Prometheus registry for one gopar invocation:
// search progress, route usage per matrix, and DRC diagnostic counts.
//
// A Registry struct holds every metric, built once via
// promauto.With(registry) in NewRegistry, with Record* methods as the only
// mutation surface — one domain group (par), since gopar runs
// one pipeline per invocation rather than a multi-subsystem server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric gopar exposes for one run.
type Registry struct {
	PlacementScore      prometheus.Gauge
	PlacementIterations prometheus.Gauge
	PlacementSolved     prometheus.Gauge

	RoutesUsedTotal *prometheus.CounterVec // labelled by matrix

	DiagnosticsTotal *prometheus.CounterVec // labelled by level

	registry *prometheus.Registry
}

// NewRegistry returns a fresh registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.PlacementScore = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "gopar_placement_score",
		Help: "Number of unroutable required edges in the final placement (0 is solved).",
	})
	r.PlacementIterations = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "gopar_placement_iterations",
		Help: "Number of search iterations the engine ran.",
	})
	r.PlacementSolved = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "gopar_placement_solved",
		Help: "1 if the search converged to score 0, 0 otherwise.",
	})
	r.RoutesUsedTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "gopar_routes_used_total",
		Help: "Routing-fabric edges consumed by the committed placement, by matrix.",
	}, []string{"matrix"})
	r.DiagnosticsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "gopar_diagnostics_total",
		Help: "Diagnostics emitted by the build, search, commit and DRC stages, by level.",
	}, []string{"level"})

	return r
}

// GetPrometheusRegistry returns the underlying registry, for exposing on an
// HTTP handler or writing to a textfile collector.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordPlacement records the outcome of one par.Run.
func (r *Registry) RecordPlacement(score, iterations int, solved bool) {
	r.PlacementScore.Set(float64(score))
	r.PlacementIterations.Set(float64(iterations))
	if solved {
		r.PlacementSolved.Set(1)
	} else {
		r.PlacementSolved.Set(0)
	}
}

// RecordRouteUsage records a commit-stage per-matrix usage tally.
func (r *Registry) RecordRouteUsage(matrixUsage map[string]int) {
	for matrix, count := range matrixUsage {
		r.RoutesUsedTotal.WithLabelValues(matrix).Add(float64(count))
	}
}

// RecordDiagnostic increments the counter for one diagnostic level.
func (r *Registry) RecordDiagnostic(level string) {
	r.DiagnosticsTotal.WithLabelValues(level).Inc()
}
