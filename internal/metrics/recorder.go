package metrics

import "time"

// DocumentResult enumerates per-document pipeline outcomes.
type DocumentResult string

const (
	DocumentConverted        DocumentResult = "converted"
	DocumentSkippedNoTitle   DocumentResult = "skipped_no_title"
	DocumentConversionFailed DocumentResult = "conversion_failed"
	DocumentDuplicateOutput  DocumentResult = "duplicate_output"
	DocumentWriteFailed      DocumentResult = "write_failed"
)

// PageResult enumerates per-page enricher outcomes.
type PageResult string

const (
	PageInjected  PageResult = "injected"
	PageUnchanged PageResult = "unchanged"
	PageNoHead    PageResult = "no_head"
)

// Recorder defines observability hooks for the build pipeline and the
// post-build enricher.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncDocumentResult(result DocumentResult)
	IncPageResult(result PageResult)
	SetFeedEntries(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncDocumentResult(DocumentResult)           {}
func (NoopRecorder) IncPageResult(PageResult)                   {}
func (NoopRecorder) SetFeedEntries(int)                         {}
