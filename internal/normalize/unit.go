package normalize

import (
	"fmt"
	"path"
	"strings"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/frontmatter"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

const linkSeparator = " · "

// RelatedLink is a resolved cross-reference.
type RelatedLink struct {
	Title  string
	Target string // docs-relative output path of the referenced document
}

// Unit is a normalized output document before serialization.
type Unit struct {
	Meta           metadata.DocumentMetadata
	Body           string
	Description    foundation.Option[string]
	ReadingMinutes int
	Related        []RelatedLink
}

// Normalizer builds output units from converter output.
type Normalizer struct {
	author         string
	wordsPerMinute int
}

// New creates a Normalizer for the site author.
func New(author string, wordsPerMinute int) *Normalizer {
	return &Normalizer{author: author, wordsPerMinute: wordsPerMinute}
}

// Normalize cleans the converter output and derives description and
// reading time for meta.
func (n *Normalizer) Normalize(converted string, meta metadata.DocumentMetadata, related []RelatedLink) Unit {
	body := Clean(converted, n.author)
	return Unit{
		Meta:           meta,
		Body:           body,
		Description:    Description(body, n.author, meta.Subtitle),
		ReadingMinutes: ReadingTime(body, n.wordsPerMinute),
		Related:        related,
	}
}

// Render serializes u into a complete Markdown document with a
// fingerprinted preamble.
func (n *Normalizer) Render(u Unit) ([]byte, error) {
	fields := map[string]any{"author": n.author}
	if t, ok := u.Meta.Published.Get(); ok {
		fields["date"] = t
	}
	if d, ok := u.Description.Get(); ok && d != "" {
		fields["description"] = d
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", u.Meta.Title)
	if sub, ok := u.Meta.Subtitle.Get(); ok {
		fmt.Fprintf(&b, "*%s*\n\n", sub)
	}
	fmt.Fprintf(&b, "**%s**\n\n", n.author)
	fmt.Fprintf(&b, "<span class=\"essay-meta\">%s</span>\n\n", StatusLine(u.Meta, u.ReadingMinutes))
	b.WriteString("---\n\n")
	b.WriteString(u.Body)
	b.WriteString("\n")

	if block := relatedBlock(u.Meta.OutputPath, u.Related); block != "" {
		b.WriteString("\n---\n\n")
		b.WriteString(block)
		b.WriteString("\n")
	}

	out, err := frontmatter.Compose(fields, []byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", u.Meta.OutputPath, err)
	}
	return out, nil
}

// StatusLine composes the visible date and reading-time line. The updated
// date appears only when known and different from the published date.
func StatusLine(meta metadata.DocumentMetadata, minutes int) string {
	var parts []string
	published := metadata.FormatDate(meta.Published)
	if published != "" {
		parts = append(parts, "Published: "+published)
	}
	if updated := metadata.FormatDate(meta.Updated); updated != "" && updated != published {
		parts = append(parts, "Updated: "+updated)
	}
	parts = append(parts, fmt.Sprintf("%d min read", minutes))
	return strings.Join(parts, linkSeparator)
}

func relatedBlock(from string, links []RelatedLink) string {
	if len(links) == 0 {
		return ""
	}
	items := make([]string, 0, len(links))
	for _, l := range links {
		items = append(items, fmt.Sprintf("[%s](%s)", l.Title, RelativeLink(from, l.Target)))
	}
	return "**Related:** " + strings.Join(items, linkSeparator)
}

// RelativeLink returns the path to target relative to the directory of from.
// Both are slash-separated paths under the same root.
func RelativeLink(from, target string) string {
	fromParts := splitDir(path.Dir(from))
	targetDir, file := path.Split(target)
	targetParts := splitDir(path.Clean(targetDir))

	common := 0
	for common < len(fromParts) && common < len(targetParts) && fromParts[common] == targetParts[common] {
		common++
	}

	var parts []string
	for range fromParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	parts = append(parts, file)
	return strings.Join(parts, "/")
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" || dir == "/" {
		return nil
	}
	return strings.Split(strings.Trim(dir, "/"), "/")
}
