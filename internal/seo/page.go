package seo

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

const structuredDataMarker = "application/ld+json"

var (
	publishedPattern = regexp.MustCompile(`Published:\s*(\d{4}-\d{2}-\d{2})`)
	updatedPattern   = regexp.MustCompile(`Updated:\s*(\d{4}-\d{2}-\d{2})`)
)

// Page is what the enricher recovers from one rendered HTML file.
type Page struct {
	Path        string // slash-separated, relative to the site directory
	URL         string // canonical URL
	Title       string
	Description string
	Published   foundation.Option[time.Time]
	Updated     foundation.Option[time.Time] // defaults to Published
	Essay       bool                         // under the essays section
	Enriched    bool                         // already carries structured data
}

// LastModified is the later of Updated and Published.
func (p Page) LastModified() foundation.Option[time.Time] {
	pub, hasPub := p.Published.Get()
	upd, hasUpd := p.Updated.Get()
	switch {
	case hasPub && hasUpd:
		if upd.After(pub) {
			return p.Updated
		}
		return p.Published
	case hasUpd:
		return p.Updated
	default:
		return p.Published
	}
}

// PageOptions controls how pages are interpreted.
type PageOptions struct {
	SiteURL        string // absolute, without trailing slash
	TitleSeparator string
	EssaysDir      string // first path segment of essay pages
}

// ExtractPage parses a rendered page located at rel under the site root.
func ExtractPage(rel string, html []byte, opts PageOptions) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Page{}, fmt.Errorf("parse %s: %w", rel, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if opts.TitleSeparator != "" {
		title, _, _ = strings.Cut(title, opts.TitleSeparator)
		title = strings.TrimSpace(title)
	}
	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	text := string(html)
	published := matchDate(publishedPattern, text)
	return Page{
		Path:        rel,
		URL:         CanonicalURL(opts.SiteURL, rel),
		Title:       title,
		Description: strings.TrimSpace(description),
		Published:   published,
		Updated:     matchDate(updatedPattern, text).Or(published),
		Essay:       opts.EssaysDir != "" && strings.HasPrefix(rel, opts.EssaysDir+"/"),
		Enriched:    strings.Contains(text, structuredDataMarker),
	}, nil
}

func matchDate(re *regexp.Regexp, text string) foundation.Option[time.Time] {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return foundation.None[time.Time]()
	}
	t, err := time.Parse(metadata.DateLayout, m[1])
	if err != nil {
		return foundation.None[time.Time]()
	}
	return foundation.Some(t)
}

// CanonicalURL maps a site-relative page path to its public URL. An index
// page stands for its directory; the root index is the bare site URL.
func CanonicalURL(siteURL, rel string) string {
	dir, file := path.Split(rel)
	if file == "index.html" {
		return siteURL + "/" + dir
	}
	return siteURL + "/" + rel
}
