package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
)

func TestDescription_FirstQualifyingLine(t *testing.T) {
	body := strings.Join([]string{
		"## Heading",
		"",
		"![img](a.png)",
		"",
		"*An italic epigraph line that is long enough*",
		"",
		"- a list item that is long enough to qualify",
		"",
		"**James Oliver** is credited on this long line",
		"",
		"<div class=\"raw\">raw markup that is long enough</div>",
		"",
		"Short line.",
		"",
		"The **first** real paragraph with $x^2$ math and a [link](http://x) that is long.",
	}, "\n")

	got := Description(body, "James Oliver", foundation.None[string]())
	assert.Equal(t, "The first real paragraph with math and a link that is long.", got.UnwrapOr(""))
}

func TestDescription_Truncation(t *testing.T) {
	body := strings.TrimSpace(strings.Repeat("word ", 40))

	got := Description(body, "", foundation.None[string]()).Unwrap()
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 155)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), "word"), "cut at a word boundary")
}

func TestDescription_MultibyteNeverExceedsLimit(t *testing.T) {
	body := strings.TrimSpace(strings.Repeat("Größe ", 60))

	got := Description(body, "", foundation.None[string]()).Unwrap()
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 155)
	assert.True(t, utf8.ValidString(got))
}

func TestDescription_Fallbacks(t *testing.T) {
	got := Description("Too short.\n", "", foundation.Some("The subtitle"))
	assert.Equal(t, "The subtitle", got.Unwrap())

	got = Description("Too short.\n", "", foundation.None[string]())
	assert.True(t, got.IsNone())
}

func TestTruncateAtWord_ShortInputUnchanged(t *testing.T) {
	got, ok := truncateAtWord("short", 155)
	require.True(t, ok)
	require.Equal(t, "short", got)
}

func TestTruncateAtWord_NoSpaceInWindow(t *testing.T) {
	_, ok := truncateAtWord("https://example.org/"+strings.Repeat("a", 200)+" tail", 155)
	assert.False(t, ok)
}

func TestDescription_UnbreakableLineIsSkipped(t *testing.T) {
	token := strings.Repeat("a", 200)
	body := token + "\n\nA later paragraph that is comfortably longer than thirty characters."

	got := Description(body, "", foundation.Some("The subtitle"))
	assert.Equal(t, "A later paragraph that is comfortably longer than thirty characters.", got.Unwrap())

	got = Description(token, "", foundation.Some("The subtitle"))
	assert.Equal(t, "The subtitle", got.Unwrap())
}
