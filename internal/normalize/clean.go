// Package normalize rewrites converter output into the site's normalized
// Markdown unit.
package normalize

import (
	"regexp"
	"strings"
)

// Rewrite is one named step of body cleaning.
type Rewrite struct {
	Name  string
	Apply func(string) string
}

var (
	blankRun         = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)
	emptyAnchor      = regexp.MustCompile(`\[\]\{#[^}\n]*\}`)
	idAttributes     = regexp.MustCompile(`[ \t]*\{#[^}\n]*\}`)
	classAttributes  = regexp.MustCompile(`(?m)[ \t]+\{\.[^}\n]*\}$`)
	fencedDivLine    = regexp.MustCompile(`(?m)^:::.*(?:\n|$)`)
	citation         = regexp.MustCompile(`\s?\[@[^\]\n]+\]`)
	lineContinuation = regexp.MustCompile(`(?m)(^|[^\\])\\$`)
	tripleHyphen     = regexp.MustCompile(`(\w)---(\w)`)
	midTextBreak     = regexp.MustCompile(`[ \t]*\\\\[ \t]*`)
	mathSpan         = regexp.MustCompile(`(?s)\$\$.*?\$\$|\$[^$\n]+\$`)
	captionLine      = regexp.MustCompile(`(?m)^(?:Table)?: (.+)$`)
	listGap          = regexp.MustCompile(`(?m)^([ \t]*(?:[-*+]|\d+[.)])[ \t].*)\n[ \t]*\n([ \t]*(?:[-*+]|\d+[.)])[ \t])`)
)

// Rewrites returns the ordered body-cleaning sequence. author identifies the
// attribution line the converter copies from the source title block.
func Rewrites(author string) []Rewrite {
	return []Rewrite{
		{"strip_title_block", func(s string) string { return stripTitleBlock(s, author) }},
		{"collapse_blank_lines", collapseBlankLines},
		{"strip_anchors", stripAnchors},
		{"strip_fenced_divs", func(s string) string { return fencedDivLine.ReplaceAllString(s, "") }},
		{"strip_citations", func(s string) string { return citation.ReplaceAllString(s, "") }},
		{"strip_line_continuations", func(s string) string { return lineContinuation.ReplaceAllString(s, "$1") }},
		{"recollapse_blank_lines", collapseBlankLines},
		{"em_dash", func(s string) string { return tripleHyphen.ReplaceAllString(s, "$1—$2") }},
		{"unescape_quotes", unescapeQuotes},
		{"mid_text_breaks", replaceMidTextBreaks},
		{"captions", func(s string) string { return captionLine.ReplaceAllString(s, "*$1*") }},
		{"collapse_list_gaps", collapseListGaps},
	}
}

// Clean applies Rewrites in order and trims the result.
func Clean(raw, author string) string {
	body := strings.ReplaceAll(raw, "\r\n", "\n")
	for _, r := range Rewrites(author) {
		body = r.Apply(body)
	}
	return strings.TrimSpace(body)
}

// stripTitleBlock drops leading blank lines, top-level headings and the
// bold author line that precede the first real content.
func stripTitleBlock(s, author string) string {
	lines := strings.Split(s, "\n")
	authorLower := strings.ToLower(author)

	start := 0
	for ; start < len(lines); start++ {
		line := strings.TrimSpace(lines[start])
		if line == "" || strings.HasPrefix(lines[start], "# ") {
			continue
		}
		if strings.HasPrefix(line, "**") {
			lower := strings.ToLower(line)
			if (authorLower != "" && strings.Contains(lower, authorLower)) || strings.Contains(lower, "author") {
				continue
			}
		}
		break
	}
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

func collapseBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}

func stripAnchors(s string) string {
	s = emptyAnchor.ReplaceAllString(s, "")
	s = idAttributes.ReplaceAllString(s, "")
	return classAttributes.ReplaceAllString(s, "")
}

func unescapeQuotes(s string) string {
	return strings.NewReplacer(`\"`, `"`, `\'`, `'`).Replace(s)
}

// replaceMidTextBreaks turns stray `\\` markers in prose into a single
// space. Math spans are left untouched, as are markers directly next to a
// math delimiter.
func replaceMidTextBreaks(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range mathSpan.FindAllStringIndex(s, -1) {
		b.WriteString(replaceBreaksInProse(s[last:loc[0]], last > 0, true))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(replaceBreaksInProse(s[last:], last > 0, false))
	return b.String()
}

func replaceBreaksInProse(seg string, mathBefore, mathAfter bool) string {
	matches := midTextBreak.FindAllStringIndex(seg, -1)
	if len(matches) == 0 {
		return seg
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		adjacentToMath := (mathBefore && m[0] == 0) || (mathAfter && m[1] == len(seg))
		b.WriteString(seg[last:m[0]])
		if adjacentToMath {
			b.WriteString(seg[m[0]:m[1]])
		} else {
			b.WriteString(" ")
		}
		last = m[1]
	}
	b.WriteString(seg[last:])
	return b.String()
}

// collapseListGaps joins list items separated by a blank line. Each pass
// can expose another adjacent pair, so it runs to a fixed point.
func collapseListGaps(s string) string {
	for {
		next := listGap.ReplaceAllString(s, "$1\n$2")
		if next == s {
			return s
		}
		s = next
	}
}
