package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "essaysite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration   *prom.HistogramVec
	documentResults *prom.CounterVec
	pageResults     *prom.CounterVec
	feedEntries     prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Source documents by pipeline outcome",
		}, []string{"result"}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Rendered pages by enrichment outcome",
		}, []string{"result"}),
		feedEntries: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_entries",
			Help:      "Entries written to the syndication feed by the last run",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.documentResults, pr.pageResults, pr.feedEntries)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result DocumentResult) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncPageResult(result PageResult) {
	if p == nil || p.pageResults == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetFeedEntries(n int) {
	if p == nil || p.feedEntries == nil {
		return
	}
	p.feedEntries.Set(float64(n))
}

// WriteTextfile writes every metric gathered from g to path in the
// Prometheus text exposition format.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
