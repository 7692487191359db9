package metrics

import (
	"sync"

	"github.com/Kirankkt/Construction-Scheduler-2/core/factory"
	coremetrics "github.com/Kirankkt/Construction-Scheduler-2/core/metrics"
)

var registerOnce sync.Once
var registerErr error

// RegisterSinks registers the built-in run sinks with the core registry.
// It is safe to call more than once; only the first call registers.
func RegisterSinks() error {
	registerOnce.Do(func() { registerErr = registerSinks() })
	return registerErr
}

func registerSinks() error {
	if err := coremetrics.RegisterRunSink("nop", func(map[string]any) (coremetrics.RunSink, error) {
		return coremetrics.NopSink{}, nil
	}); err != nil {
		return err
	}
	if err := coremetrics.RegisterRunSink("prometheus", func(map[string]any) (coremetrics.RunSink, error) {
		return NewPromSink()
	}); err != nil {
		return err
	}
	return coremetrics.RegisterRunSink("influx", func(conf map[string]any) (coremetrics.RunSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
