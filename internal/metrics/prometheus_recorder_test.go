package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("convert", 150*time.Millisecond)
	pr.IncDocumentResult(DocumentConverted)
	pr.IncDocumentResult(DocumentConverted)
	pr.IncDocumentResult(DocumentSkippedNoTitle)
	pr.IncPageResult(PageInjected)
	pr.SetFeedEntries(7)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				key := mf.GetName()
				for _, l := range m.GetLabel() {
					key += "/" + l.GetValue()
				}
				byName[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				byName[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, byName["essaysite_documents_total/converted"])
	assert.Equal(t, 1.0, byName["essaysite_documents_total/skipped_no_title"])
	assert.Equal(t, 1.0, byName["essaysite_pages_total/injected"])
	assert.Equal(t, 7.0, byName["essaysite_feed_entries"])
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("x", time.Second)
	pr.IncDocumentResult(DocumentConverted)
	pr.IncPageResult(PageNoHead)
	pr.SetFeedEntries(1)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.IncDocumentResult(DocumentConversionFailed)
	r.IncPageResult(PageUnchanged)
	r.SetFeedEntries(0)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncDocumentResult(DocumentConverted)

	path := filepath.Join(t.TempDir(), "out", "essaysite.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `essaysite_documents_total{result="converted"} 1`))
}
