// Package observability bundles Prometheus metrics for long-running
// parameter sweeps and provides an HTTP handler to expose them. The
// simulation core never touches this package; sweeps feed it through
// run summaries only.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contagion-sim/contagion-sim/sim"
)

// SweepCollector tracks batch progress across the runs of a sweep.
type SweepCollector struct {
	gatherer prometheus.Gatherer

	RunsCompleted    prometheus.Counter
	StepsPerRun      prometheus.Histogram
	OutbreakFraction prometheus.Histogram
	LastOutbreak     prometheus.Gauge
}

// NewSweepCollector registers sweep metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSweepCollector(reg prometheus.Registerer) (*SweepCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &SweepCollector{
		gatherer: gatherer,
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sweep_runs_completed_total",
			Help: "Total number of simulation runs completed in this sweep.",
		}),
		StepsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sweep_run_steps",
			Help:    "Steps executed per completed run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		OutbreakFraction: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sweep_run_outbreak_fraction",
			Help:    "Fraction of nodes ever infected per completed run.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		LastOutbreak: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweep_last_outbreak_fraction",
			Help: "Outbreak fraction of the most recently completed run.",
		}),
	}

	for _, collector := range []prometheus.Collector{
		c.RunsCompleted, c.StepsPerRun, c.OutbreakFraction, c.LastOutbreak,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRun records one completed run's summary.
func (c *SweepCollector) ObserveRun(summary *sim.Summary) {
	c.RunsCompleted.Inc()
	c.StepsPerRun.Observe(float64(summary.Steps))
	c.OutbreakFraction.Observe(summary.EverInfectedFraction)
	c.LastOutbreak.Set(summary.EverInfectedFraction)
}

// Handler returns an HTTP handler serving the collector's registry.
func (c *SweepCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
