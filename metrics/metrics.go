// Package metrics describes a generation run as Prometheus gauges.
//
// The generator is a batch job, so the gauges are written once to a file for
// the node-exporter textfile collector instead of being served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/zqx/assign"
	"github.com/arloliu/zqx/codespace"
	"github.com/arloliu/zqx/format"
	"github.com/arloliu/zqx/verify"
)

const namespace = "zqx"

// Recorder owns a private registry with the generation gauges.
type Recorder struct {
	registry *prometheus.Registry

	assigned    *prometheus.GaugeVec
	capacity    *prometheus.GaugeVec
	utilization *prometheus.GaugeVec
	violations  *prometheus.GaugeVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its gauges.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		assigned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "codes_assigned",
			Help:      "Number of words bound to a code, by tier.",
		}, []string{"tier"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "code_space_capacity",
			Help:      "Number of codes available, by tier.",
		}, []string{"tier"}),
		utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "code_space_utilization_ratio",
			Help:      "Assigned codes divided by available codes, by tier.",
		}, []string{"tier"}),
		violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "invariant_violations",
			Help:      "Number of violations found by the last check, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of the last generation.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_generation_timestamp_seconds",
			Help:      "Unix time the last generation finished.",
		}),
	}

	r.registry.MustRegister(r.assigned, r.capacity, r.utilization, r.violations, r.duration, r.lastRun)

	return r
}

// Registry exposes the registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveAssignment sets the per-tier gauges. Tier-1 capacity is the size of
// the tier-1 alphabet.
func (r *Recorder) ObserveAssignment(a *assign.Assignment, space *codespace.Space) {
	counts := a.Counts()

	for _, tier := range format.Tiers {
		label := tierLabel(tier)
		capacity := space.Capacity(tier)
		if tier == format.Tier1 {
			capacity = len(codespace.Tier1Alphabet)
		}

		r.assigned.WithLabelValues(label).Set(float64(counts.Of(tier)))
		r.capacity.WithLabelValues(label).Set(float64(capacity))

		ratio := 0.0
		if capacity > 0 {
			ratio = float64(counts.Of(tier)) / float64(capacity)
		}
		r.utilization.WithLabelValues(label).Set(ratio)
	}
}

// ObserveReport sets one violation gauge per kind, zero included.
func (r *Recorder) ObserveReport(report *verify.Report) {
	for _, k := range verify.Kinds {
		r.violations.WithLabelValues(k.String()).Set(float64(report.Count(k)))
	}
}

// ObserveRun records how long a generation took and when it finished.
func (r *Recorder) ObserveRun(elapsed time.Duration, finished time.Time) {
	r.duration.Set(elapsed.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes every gauge to path in the text exposition format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func tierLabel(t format.Tier) string {
	switch t {
	case format.Tier1:
		return "1"
	case format.Tier2:
		return "2"
	case format.Tier3:
		return "3"
	default:
		return "unknown"
	}
}
