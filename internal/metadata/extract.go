// Package metadata extracts document metadata from raw source text and
// derives slugs and output paths.
package metadata

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
)

// ErrNoTitle is returned when the title marker is absent, empty or still the template placeholder.
var ErrNoTitle = errors.New("no title")

var (
	// Marker arguments may hold one level of nested braces, e.g. \emph{x}.
	titleMarker    = markerPattern("DocumentTitle")
	subtitleMarker = markerPattern("DocumentSubtitle")
	relatedMarker  = markerPattern("DocumentRelated")

	boldMarkup     = regexp.MustCompile(`\\textbf\{(.+?)\}`)
	emphasisMarkup = regexp.MustCompile(`\\emph\{(.+?)\}`)
)

func markerPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\\newcommand\{\\` + name + `\}\{((?:[^{}\n]|\{[^{}\n]*\})*)\}`)
}

// Extracted holds what the document's own markers declare.
type Extracted struct {
	Title        string
	Subtitle     foundation.Option[string]
	RelatedSlugs []string
}

// Extractor pulls marker-declared metadata out of source text.
type Extractor struct {
	titlePlaceholder    string
	subtitlePlaceholder string
}

// NewExtractor creates an extractor that treats the given template
// placeholders as absent values.
func NewExtractor(titlePlaceholder, subtitlePlaceholder string) *Extractor {
	return &Extractor{
		titlePlaceholder:    titlePlaceholder,
		subtitlePlaceholder: subtitlePlaceholder,
	}
}

// Extract returns the document's title, subtitle and related references.
// It is a pure function of text; a missing or placeholder title yields ErrNoTitle.
func (e *Extractor) Extract(text string) (Extracted, error) {
	m := titleMarker.FindStringSubmatch(text)
	if m == nil {
		return Extracted{}, ErrNoTitle
	}
	raw := strings.TrimSpace(m[1])
	if raw == "" {
		return Extracted{}, ErrNoTitle
	}
	if raw == e.titlePlaceholder {
		return Extracted{}, fmt.Errorf("%w: placeholder %q", ErrNoTitle, raw)
	}

	return Extracted{
		Title:        CleanTitle(raw),
		Subtitle:     e.subtitle(text),
		RelatedSlugs: related(text),
	}, nil
}

func (e *Extractor) subtitle(text string) foundation.Option[string] {
	m := subtitleMarker.FindStringSubmatch(text)
	if m == nil {
		return foundation.None[string]()
	}
	return foundation.FromZero(strings.TrimSpace(m[1])).
		Filter(func(s string) bool { return s != e.subtitlePlaceholder })
}

// related returns the slugs named by the related-references marker, in
// declaration order and without duplicates.
func related(text string) []string {
	m := relatedMarker.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var slugs []string
	seen := map[string]struct{}{}
	for _, entry := range strings.Split(m[1], ",") {
		s := Slug(entry)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		slugs = append(slugs, s)
	}
	return slugs
}

// CleanTitle strips the inline markup a title may carry so it can be
// displayed directly.
func CleanTitle(title string) string {
	title = strings.ReplaceAll(title, "--", "–")
	title = boldMarkup.ReplaceAllString(title, "$1")
	title = emphasisMarkup.ReplaceAllString(title, "$1")
	return title
}
