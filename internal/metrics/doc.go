// Package metrics provides observability hooks for document conversions.
//
// The package implements the Null Object pattern so callers never need nil
// checks: components receive a Recorder through dependency injection and
// default to NoopRecorder, whose no-op methods inline to nothing.
//
//	type Converter struct {
//	    recorder metrics.Recorder
//	}
//
//	func New() *Converter {
//	    return &Converter{recorder: metrics.NoopRecorder{}}
//	}
//
// When metrics are enabled (watch mode with a configured listen address),
// swap in the real implementation:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//
// Everything downstream stays unchanged; only the injected implementation
// differs between a one-shot CLI run and a long-running watcher.
package metrics
