package metrics

import (
	"context"

	"github.com/Kirankkt/Construction-Scheduler-2/core/events"
	coremetrics "github.com/Kirankkt/Construction-Scheduler-2/core/metrics"
	"github.com/Kirankkt/Construction-Scheduler-2/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// scheduling events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.RunSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.RunEvent:
					_ = sink.RecordScheduleRun(e)
				case events.SuggestEvent:
					if r, ok := sink.(coremetrics.SuggestRecorder); ok {
						_ = r.RecordSuggestRun(e)
					}
				}
			}
		}
	}()
}
