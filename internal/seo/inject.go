package seo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

// ErrNoHead indicates a page has no closing head tag to inject before.
var ErrNoHead = errors.New("no closing head tag")

const injectionIndent = "    "

// headClose matches the closing head tag on the original bytes so the
// returned offset is valid for slicing the page.
var headClose = regexp.MustCompile(`(?i)</head\s*>`)

// TagOptions carries the site identity written into injected tags.
type TagOptions struct {
	SiteURL           string
	SiteName          string
	Author            string
	FeedURL           string
	VerificationToken string
	TwitterCard       string
}

// Injections returns the tags page still lacks, in insertion order. Each
// tag is added only when the rendered markup does not already carry it.
func Injections(markup string, page Page, opts TagOptions) ([]string, error) {
	var tags []string
	add := func(marker, tag string) {
		if !strings.Contains(markup, marker) {
			tags = append(tags, tag)
		}
	}

	if opts.VerificationToken != "" {
		add("google-site-verification", meta("name", "google-site-verification", opts.VerificationToken))
	}
	add(`<link rel="canonical"`, fmt.Sprintf(`<link rel="canonical" href="%s" />`, html.EscapeString(page.URL)))
	if opts.FeedURL != "" {
		add("application/rss+xml", fmt.Sprintf(`<link rel="alternate" type="application/rss+xml" title="%s" href="%s" />`,
			html.EscapeString(opts.SiteName), html.EscapeString(opts.FeedURL)))
	}
	add("og:type", meta("property", "og:type", "article"))
	add("og:site_name", meta("property", "og:site_name", opts.SiteName))
	if published := metadata.FormatDate(page.Published); published != "" {
		add("article:published_time", meta("property", "article:published_time", published))
	}
	if updated := metadata.FormatDate(page.Updated); updated != "" {
		add("article:modified_time", meta("property", "article:modified_time", updated))
	}
	add("article:author", meta("property", "article:author", opts.Author))
	if opts.TwitterCard != "" {
		add("twitter:card", meta("name", "twitter:card", opts.TwitterCard))
	}

	if page.Essay {
		ld, err := StructuredData(page, opts)
		if err != nil {
			return nil, err
		}
		tags = append(tags, `<script type="`+structuredDataMarker+`">`+ld+`</script>`)
	}
	return tags, nil
}

func meta(attr, key, content string) string {
	return fmt.Sprintf(`<meta %s="%s" content="%s" />`, attr, key, html.EscapeString(content))
}

type personLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type webPageLD struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type articleLD struct {
	Context          string    `json:"@context"`
	Type             string    `json:"@type"`
	Headline         string    `json:"headline"`
	Author           personLD  `json:"author"`
	Publisher        personLD  `json:"publisher"`
	MainEntityOfPage webPageLD `json:"mainEntityOfPage"`
	Description      string    `json:"description,omitempty"`
	DatePublished    string    `json:"datePublished,omitempty"`
	DateModified     string    `json:"dateModified,omitempty"`
}

// StructuredData encodes the schema.org Article describing page.
func StructuredData(page Page, opts TagOptions) (string, error) {
	ld := articleLD{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         page.Title,
		Author:           personLD{Type: "Person", Name: opts.Author, URL: opts.SiteURL},
		Publisher:        personLD{Type: "Person", Name: opts.Author},
		MainEntityOfPage: webPageLD{Type: "WebPage", ID: page.URL},
		Description:      page.Description,
		DatePublished:    metadata.FormatDate(page.Published),
		DateModified:     metadata.FormatDate(page.Updated),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ld); err != nil {
		return "", fmt.Errorf("encode structured data for %s: %w", page.Path, err)
	}
	// "</" would end the script element early.
	return strings.ReplaceAll(strings.TrimSuffix(buf.String(), "\n"), "</", `<\/`), nil
}

// InjectHead inserts tags, one per line, immediately before the first
// closing head tag.
func InjectHead(markup string, tags []string) (string, error) {
	loc := headClose.FindStringIndex(markup)
	if loc == nil {
		return markup, ErrNoHead
	}
	idx := loc[0]
	if len(tags) == 0 {
		return markup, nil
	}

	// Keep the closing tag's own indentation by inserting at its line start.
	at, lead := idx, "\n"
	lineStart := strings.LastIndexByte(markup[:idx], '\n') + 1
	if strings.TrimSpace(markup[lineStart:idx]) == "" {
		at, lead = lineStart, ""
	}

	var b strings.Builder
	b.Grow(len(markup) + 128*len(tags))
	b.WriteString(markup[:at])
	b.WriteString(lead)
	for _, tag := range tags {
		b.WriteString(injectionIndent)
		b.WriteString(tag)
		b.WriteByte('\n')
	}
	b.WriteString(markup[at:])
	return b.String(), nil
}
