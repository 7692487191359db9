package metrics

import "github.com/Kirankkt/Construction-Scheduler-2/core/events"

// MultiSink fans run events out to multiple sinks.
type MultiSink struct {
	Sinks []RunSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...RunSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the event to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordScheduleRun(ev events.RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSuggestRun forwards the event to the sinks that support it.
func (m *MultiSink) RecordSuggestRun(ev events.SuggestEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SuggestRecorder); ok {
			if err := rec.RecordSuggestRun(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
