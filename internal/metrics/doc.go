// Package metrics records pipeline and enricher metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection needs no nil checks at call sites:
//
//	type Pipeline struct {
//	    recorder metrics.Recorder
//	}
//
// When a metrics file is configured the CLI swaps in a PrometheusRecorder
// and writes the registry in the text exposition format at the end of the
// run, for pickup by a node_exporter textfile collector:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run ...
//	err := metrics.WriteTextfile(path, reg)
package metrics
