// Package metrics records build pipeline metrics. The default
// NoopRecorder keeps instrumentation zero-cost for callers that do not
// configure a registry; hosts that process many technotes in one
// process can inject the Prometheus recorder instead.
package metrics

import "time"

// Recorder receives pipeline events.
type Recorder interface {
	BuildStarted()
	BuildSucceeded(duration time.Duration)
	ParseFailure()
	ValidationFailure(violations int)
	LicenseWarning()
}

// NoopRecorder is the default Recorder; every method does nothing.
type NoopRecorder struct{}

func (NoopRecorder) BuildStarted()                {}
func (NoopRecorder) BuildSucceeded(time.Duration) {}
func (NoopRecorder) ParseFailure()                {}
func (NoopRecorder) ValidationFailure(int)        {}
func (NoopRecorder) LicenseWarning()              {}
