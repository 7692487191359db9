package metrics

import "github.com/Kirankkt/Construction-Scheduler-2/core/events"

// RunSink records scheduling pipeline runs for observability purposes.
type RunSink interface {
	RecordScheduleRun(ev events.RunEvent) error
}

// SuggestRecorder records capacity-search invocations. Sinks implement it
// in addition to RunSink when they can represent the search outcome.
type SuggestRecorder interface {
	RecordSuggestRun(ev events.SuggestEvent) error
}

// NopSink implements RunSink and SuggestRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduleRun(events.RunEvent) error    { return nil }
func (NopSink) RecordSuggestRun(events.SuggestEvent) error { return nil }
