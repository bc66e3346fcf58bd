// Package metrics exposes Prometheus instrumentation for screening runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	runsTotal       prometheus.Counter
	runDuration     prometheus.Histogram
	stageDuration   *prometheus.HistogramVec
	stageInput      *prometheus.CounterVec
	stagePassed     *prometheus.CounterVec
	stageAutoPasses *prometheus.CounterVec
	candidates      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sifter_runs_total",
			Help: "Total number of screening runs",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sifter_run_duration_seconds",
			Help:    "Full screening run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sifter_stage_duration_seconds",
				Help:    "Per-stage evaluation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"stage"},
		),
		stageInput: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sifter_stage_symbols_in_total",
				Help: "Symbols entering each stage",
			},
			[]string{"stage"},
		),
		stagePassed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sifter_stage_symbols_passed_total",
				Help: "Symbols passing each stage",
			},
			[]string{"stage"},
		),
		stageAutoPasses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sifter_stage_auto_passes_total",
				Help: "Symbols auto-passed on missing data or evaluation errors",
			},
			[]string{"stage"},
		),
		candidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sifter_candidates",
			Help: "Final candidates from the most recent screening run",
		}),
	}

	reg.MustRegister(r.runsTotal)
	reg.MustRegister(r.runDuration)
	reg.MustRegister(r.stageDuration)
	reg.MustRegister(r.stageInput)
	reg.MustRegister(r.stagePassed)
	reg.MustRegister(r.stageAutoPasses)
	reg.MustRegister(r.candidates)

	return r
}

// ObserveStage records one stage evaluation.
func (r *Registry) ObserveStage(stage string, input, passed, autoPassed int, elapsed time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	r.stageInput.WithLabelValues(stage).Add(float64(input))
	r.stagePassed.WithLabelValues(stage).Add(float64(passed))
	if autoPassed > 0 {
		r.stageAutoPasses.WithLabelValues(stage).Add(float64(autoPassed))
	}
}

// ObserveRun records one completed screening run.
func (r *Registry) ObserveRun(candidates int, elapsed time.Duration) {
	r.runsTotal.Inc()
	r.runDuration.Observe(elapsed.Seconds())
	r.candidates.Set(float64(candidates))
}
