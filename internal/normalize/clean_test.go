package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_FullSequence(t *testing.T) {
	raw := `# Entropy

**James Oliver**

## Introduction {#sec:intro}

Heat flows[@clausius1850] from hot to cold.\
Next line.



::: center
Centered
:::

A word---another and \"quoted\" text with a \\ break and $a \\ b$ math.

Table: Results of the run

- one

- two

- three
`

	want := `## Introduction

Heat flows from hot to cold.
Next line.

Centered

A word—another and "quoted" text with a break and $a \\ b$ math.

*Results of the run*

- one
- two
- three`

	assert.Equal(t, want, Clean(raw, "James Oliver"))
}

func TestClean_Steps(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty anchor span", "See []{#fig1}the figure.", "See the figure."},
		{"heading classes", "## Notes {.unnumbered}", "## Notes"},
		{"citation with space", "as shown [@a; @b].", "as shown."},
		{"double backslash at eol kept", "$$a \\\\\nb$$", "$$a \\\\\nb$$"},
		{"break adjacent to math kept", "x $y$\\\\ z", "x $y$\\\\ z"},
		{"spaced triple hyphen untouched", "a --- b", "a --- b"},
		{"caption without prefix", ": Caption text", "*Caption text*"},
		{"numbered list gaps", "1. a\n\n2. b\n\n3. c", "1. a\n2. b\n3. c"},
		{"paragraph after list kept apart", "- a\n\nText", "- a\n\nText"},
		{"author line only at start", "Body\n\n**James Oliver** said", "Body\n\n**James Oliver** said"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in, "James Oliver"))
		})
	}
}

func TestRewrites_Order(t *testing.T) {
	names := make([]string, 0)
	for _, r := range Rewrites("x") {
		names = append(names, r.Name)
	}
	assert.Equal(t, "strip_title_block", names[0])
	assert.Equal(t, "collapse_list_gaps", names[len(names)-1])
	assert.Len(t, names, 12)
}
