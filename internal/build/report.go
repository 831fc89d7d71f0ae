package build

import (
	"fmt"
	"time"
)

// FailureReason classifies why a document was left out of the output.
type FailureReason string

const (
	ReasonNoTitle          FailureReason = "no_title"
	ReasonReadFailed       FailureReason = "read_failed"
	ReasonConversionFailed FailureReason = "conversion_failed"
	ReasonDuplicateOutput  FailureReason = "duplicate_output"
	ReasonWriteFailed      FailureReason = "write_failed"
)

// DocumentFailure records one skipped document.
type DocumentFailure struct {
	Document string // corpus-relative path
	Reason   FailureReason
	Err      error
}

// Report summarizes one pipeline run.
type Report struct {
	Discovered       int
	Converted        int // documents rendered into the output corpus
	Unchanged        int // rendered documents whose stored fingerprint already matched
	Removed          int // stale output files pruned
	SkippedNoTitle   int
	ConversionFailed int // converter or read failures
	DuplicateOutput  int
	WriteFailed      int

	Failures       []DocumentFailure
	StageDurations map[string]time.Duration

	Start time.Time
	End   time.Time
}

func newReport() *Report {
	return &Report{
		StageDurations: make(map[string]time.Duration),
		Start:          time.Now(),
	}
}

func (r *Report) addFailure(doc string, reason FailureReason, err error) {
	r.Failures = append(r.Failures, DocumentFailure{Document: doc, Reason: reason, Err: err})
	switch reason {
	case ReasonNoTitle:
		r.SkippedNoTitle++
	case ReasonReadFailed, ReasonConversionFailed:
		r.ConversionFailed++
	case ReasonDuplicateOutput:
		r.DuplicateOutput++
	case ReasonWriteFailed:
		r.WriteFailed++
	}
}

func (r *Report) finish() {
	r.End = time.Now()
}

// Duration is the wall-clock time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Failed is the number of documents that were discovered but not written.
func (r *Report) Failed() int {
	return r.SkippedNoTitle + r.ConversionFailed + r.DuplicateOutput + r.WriteFailed
}

// Summary is the one-line progress summary printed after a run.
func (r *Report) Summary() string {
	return fmt.Sprintf("Converted: %d, Failed: %d (no title: %d, conversion: %d, duplicate: %d, write: %d)",
		r.Converted, r.Failed(), r.SkippedNoTitle, r.ConversionFailed, r.DuplicateOutput, r.WriteFailed)
}
