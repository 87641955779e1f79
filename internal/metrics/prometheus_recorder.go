package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	convertDuration prom.Histogram
	convertResults  *prom.CounterVec
	diagramRenders  *prom.CounterVec
	skippedNodes    *prom.CounterVec
	pendingFiles    prom.Gauge
}

// NewPrometheusRecorder constructs and registers conversion metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		convertDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mddocx",
			Name:      "convert_duration_seconds",
			Help:      "Duration of individual file conversions",
			Buckets:   prom.DefBuckets,
		}),
		convertResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mddocx",
			Name:      "convert_results_total",
			Help:      "Conversion results by outcome",
		}, []string{"result"}),
		diagramRenders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mddocx",
			Name:      "diagram_renders_total",
			Help:      "Diagram render attempts by success/failure",
		}, []string{"result"}),
		skippedNodes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mddocx",
			Name:      "skipped_nodes_total",
			Help:      "Markdown nodes skipped because no renderer handles them",
		}, []string{"kind"}),
		pendingFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: "mddocx",
			Name:      "watch_pending_files",
			Help:      "Files queued for reconversion by the watcher",
		}),
	}
	reg.MustRegister(pr.convertDuration, pr.convertResults, pr.diagramRenders, pr.skippedNodes, pr.pendingFiles)
	return pr
}

func (p *PrometheusRecorder) ObserveConvertDuration(d time.Duration) {
	if p == nil || p.convertDuration == nil {
		return
	}
	p.convertDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncConvertResult(result ResultLabel) {
	if p == nil || p.convertResults == nil {
		return
	}
	p.convertResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncDiagramRender(success bool) {
	if p == nil || p.diagramRenders == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.diagramRenders.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncSkippedNode(kind string) {
	if p == nil || p.skippedNodes == nil {
		return
	}
	p.skippedNodes.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) SetPendingFiles(n int) {
	if p == nil || p.pendingFiles == nil {
		return
	}
	p.pendingFiles.Set(float64(n))
}
