package catalog

import (
	"fmt"
	"strings"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

// HomepageOptions carries the site identity and list sizes for the homepage.
type HomepageOptions struct {
	Heading     string
	Description string
	RecentCount int
}

const detailsIndent = "    "

// Homepage renders the homepage Markdown: a recent list followed by one
// collapsible block per category, mirroring Nav's ordering.
func (t *Tree) Homepage(opts HomepageOptions) string {
	var b strings.Builder
	if opts.Heading != "" {
		fmt.Fprintf(&b, "# %s\n\n", opts.Heading)
	}
	if opts.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", opts.Description)
	}

	if recent := t.Recent(opts.RecentCount); len(recent) > 0 {
		b.WriteString("## Recent\n\n")
		for _, e := range recent {
			fmt.Fprintf(&b, "- [%s](%s) — %s\n", e.DisplayTitle, e.Meta.OutputPath, metadata.FormatDate(e.Meta.Published))
		}
		b.WriteString("\n")
	}

	categories := t.Categories()
	if len(categories) == 0 {
		return b.String()
	}

	b.WriteString("## Essays\n\n")
	for _, category := range categories {
		fmt.Fprintf(&b, "??? note %q\n\n", category)
		writeEntries(&b, detailsIndent, t.sortedBucket(category, ""))
		for _, sub := range t.Subcategories(category) {
			fmt.Fprintf(&b, "%s??? note %q\n\n", detailsIndent, sub)
			writeEntries(&b, detailsIndent+detailsIndent, t.sortedBucket(category, sub))
		}
	}
	return b.String()
}

func writeEntries(b *strings.Builder, indent string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "%s- [%s](%s)\n", indent, e.DisplayTitle, e.Meta.OutputPath)
	}
	b.WriteString("\n")
}
