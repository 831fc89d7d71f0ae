package metadata

import (
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
)

// DocumentMetadata is everything pass 1 learns about one source document.
// It is read-only once collected.
type DocumentMetadata struct {
	SourcePath   string // corpus-relative, slash-separated
	Title        string
	Subtitle     foundation.Option[string]
	Published    foundation.Option[time.Time]
	Updated      foundation.Option[time.Time]
	RelatedSlugs []string
	TopCategory  string
	SubCategory  foundation.Option[string]
	Slug         string
	OutputPath   string // docs-relative, slash-separated
}

// DateLayout is the calendar-date format used in every generated artifact.
const DateLayout = "2006-01-02"

// FormatDate renders a known date, or the empty string for an unknown one.
func FormatDate(d foundation.Option[time.Time]) string {
	if t, ok := d.Get(); ok {
		return t.Format(DateLayout)
	}
	return ""
}
