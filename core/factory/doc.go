// Package factory provides a small generic registry used to instantiate
// modules from configuration. Modules are described by a type string and a
// map of raw settings; factories decode the settings into typed structs and
// return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[metrics.RunSink]()
//	reg.Register("influx", func(conf map[string]any) (metrics.RunSink, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return metrics.NewInfluxSink(c.URL), nil
//	})
package factory
