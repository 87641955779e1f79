package metrics

import "time"

// ResultLabel is the result dimension on conversion counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder receives conversion observability signals. The zero-value
// NoopRecorder drops them all, so components accept a Recorder without
// caring whether metrics are enabled.
type Recorder interface {
	ObserveConvertDuration(d time.Duration)
	IncConvertResult(result ResultLabel)
	IncDiagramRender(success bool)
	IncSkippedNode(kind string)
	SetPendingFiles(n int)
}

// NoopRecorder discards every signal. It is the default wiring when no
// metrics listener is configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveConvertDuration(time.Duration) {}
func (NoopRecorder) IncConvertResult(ResultLabel)         {}
func (NoopRecorder) IncDiagramRender(bool)                {}
func (NoopRecorder) IncSkippedNode(string)                {}
func (NoopRecorder) SetPendingFiles(int)                  {}
