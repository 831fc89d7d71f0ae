package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
)

const (
	minDescriptionLen = 30
	maxDescriptionLen = 155
	ellipsis          = "..."
)

// rawMarkupPrefixes start lines that are markup or block delimiters, not prose.
var rawMarkupPrefixes = []string{"<", ":::", "---", "$$", "|", "```", "\\", ">"}

var (
	listItemLine   = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s`)
	pureItalicLine = regexp.MustCompile(`^(?:\*[^*].*\*|_[^_].*_)$`)
	inlineMath     = regexp.MustCompile(`\$[^$]+\$`)
	linkSyntax     = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	emphasisMarks  = regexp.MustCompile(`\*+|\b_+|_+\b`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Description derives the preamble description from the cleaned body: the
// first prose line longer than the minimum that can be truncated at a word
// boundary. Without one it falls back to the subtitle.
func Description(body, author string, subtitle foundation.Option[string]) foundation.Option[string] {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if skipForDescription(line, author) {
			continue
		}
		text := plainText(line)
		if utf8.RuneCountInString(text) <= minDescriptionLen {
			continue
		}
		if desc, ok := truncateAtWord(text, maxDescriptionLen); ok {
			return foundation.Some(desc)
		}
	}
	return subtitle
}

func skipForDescription(line, author string) bool {
	switch {
	case line == "":
		return true
	case strings.HasPrefix(line, "#"):
		return true
	case strings.HasPrefix(line, "!["):
		return true
	case listItemLine.MatchString(line):
		return true
	case strings.HasPrefix(line, "**") && author != "" && strings.Contains(line, author):
		return true
	case pureItalicLine.MatchString(line):
		return true
	}
	for _, prefix := range rawMarkupPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func plainText(line string) string {
	line = inlineMath.ReplaceAllString(line, "")
	line = linkSyntax.ReplaceAllString(line, "$1")
	line = emphasisMarks.ReplaceAllString(line, "")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
}

// truncateAtWord limits s to limit runes, cutting at the last space that
// leaves room for the ellipsis. It reports false when no such space exists.
func truncateAtWord(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, true
	}
	runes := []rune(s)
	cut := string(runes[:limit-utf8.RuneCountInString(ellipsis)])
	i := strings.LastIndex(cut, " ")
	if i <= 0 {
		return "", false
	}
	cut = strings.TrimRight(cut[:i], " ,;:")
	if cut == "" {
		return "", false
	}
	return cut + ellipsis, true
}
