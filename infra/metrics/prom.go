package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Kirankkt/Construction-Scheduler-2/core/events"
	coremetrics "github.com/Kirankkt/Construction-Scheduler-2/core/metrics"
)

// PromSink records scheduling runs in Prometheus metrics.
type PromSink struct {
	runs         *prometheus.CounterVec
	durationDays *prometheus.GaugeVec
	levelingTime prometheus.Histogram
	suggestSteps prometheus.Counter
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The metrics server should be started separately with
// StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of scheduling pipeline runs",
	}, []string{"pooled", "has_cycle"})
	durationDays := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_duration_days",
		Help: "Project duration in working days from the latest run",
	}, []string{"pooled"})
	levelingTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_leveling_seconds",
		Help:    "Wall time spent in resource leveling per run",
		Buckets: prometheus.DefBuckets,
	})
	suggestSteps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_suggest_steps_total",
		Help: "Capacity increments accepted by the suggester",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(durationDays); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			durationDays = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(levelingTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			levelingTime = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(suggestSteps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			suggestSteps = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		runs:         runs,
		durationDays: durationDays,
		levelingTime: levelingTime,
		suggestSteps: suggestSteps,
	}, nil
}

// RecordScheduleRun updates the run counter, duration gauge and leveling
// time histogram.
func (s *PromSink) RecordScheduleRun(ev events.RunEvent) error {
	pooled := strconv.FormatBool(ev.Pooled)
	s.runs.WithLabelValues(pooled, strconv.FormatBool(ev.HasCycle)).Inc()
	s.durationDays.WithLabelValues(pooled).Set(ev.DurationDays)
	s.levelingTime.Observe(ev.LevelingTime.Seconds())
	return nil
}

// RecordSuggestRun adds the accepted steps of a capacity search.
func (s *PromSink) RecordSuggestRun(ev events.SuggestEvent) error {
	s.suggestSteps.Add(float64(ev.Steps))
	return nil
}

var _ coremetrics.RunSink = (*PromSink)(nil)
var _ coremetrics.SuggestRecorder = (*PromSink)(nil)
