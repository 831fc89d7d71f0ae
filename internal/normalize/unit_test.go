package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/frontmatter"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

func date(y int, m time.Month, d int) foundation.Option[time.Time] {
	return foundation.Some(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestNormalizeAndRender(t *testing.T) {
	n := New("James Oliver", 200)
	meta := metadata.DocumentMetadata{
		Title:      "Entropy",
		Subtitle:   foundation.Some("On heat"),
		Published:  date(2024, 1, 1),
		Updated:    date(2024, 2, 1),
		OutputPath: "essays/physics/entropy.md",
	}
	related := []RelatedLink{
		{Title: "Glucose (Glucose 1)", Target: "essays/biology/glucose-1.md"},
		{Title: "Heat", Target: "essays/physics/thermo/heat.md"},
	}

	unit := n.Normalize("# Entropy\n\n**James Oliver**\n\nHeat always flows from the hotter body to the colder one.\n", meta, related)
	assert.Equal(t, "Heat always flows from the hotter body to the colder one.", unit.Body)
	assert.Equal(t, 1, unit.ReadingMinutes)

	out, err := n.Render(unit)
	require.NoError(t, err)

	fm, body, had, err := frontmatter.Split(out)
	require.NoError(t, err)
	require.True(t, had)

	assert.Contains(t, string(fm), "author: James Oliver\n")
	assert.Contains(t, string(fm), "date: 2024-01-01\n")
	assert.Contains(t, string(fm), "description: Heat always flows from the hotter body to the colder one.\n")
	assert.NotEmpty(t, frontmatter.StoredFingerprint(out))

	want := `# Entropy

*On heat*

**James Oliver**

<span class="essay-meta">Published: 2024-01-01 · Updated: 2024-02-01 · 1 min read</span>

---

Heat always flows from the hotter body to the colder one.

---

**Related:** [Glucose (Glucose 1)](../biology/glucose-1.md) · [Heat](thermo/heat.md)
`
	assert.Equal(t, want, string(body))
}

func TestRender_MinimalUnit(t *testing.T) {
	n := New("James Oliver", 200)
	unit := n.Normalize("Tiny.\n", metadata.DocumentMetadata{Title: "Bare", OutputPath: "essays/x/bare.md"}, nil)

	out, err := n.Render(unit)
	require.NoError(t, err)

	fm, body, _, err := frontmatter.Split(out)
	require.NoError(t, err)
	assert.NotContains(t, string(fm), "date:")
	assert.NotContains(t, string(fm), "description:")
	assert.NotContains(t, string(body), "Related")
	assert.NotContains(t, string(body), "*Bare")
	assert.Equal(t, 1, strings.Count(string(body), "---"))
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "3 min read", StatusLine(metadata.DocumentMetadata{}, 3))
	assert.Equal(t, "Published: 2024-01-01 · 1 min read",
		StatusLine(metadata.DocumentMetadata{Published: date(2024, 1, 1), Updated: date(2024, 1, 1)}, 1))
	assert.Equal(t, "Updated: 2024-02-01 · 1 min read",
		StatusLine(metadata.DocumentMetadata{Updated: date(2024, 2, 1)}, 1))
}

func TestRelativeLink(t *testing.T) {
	tests := []struct{ from, to, want string }{
		{"essays/a/x.md", "essays/a/y.md", "y.md"},
		{"essays/a/x.md", "essays/b/y.md", "../b/y.md"},
		{"essays/a/s/x.md", "essays/b/y.md", "../../b/y.md"},
		{"essays/a/x.md", "essays/a/s/y.md", "s/y.md"},
		{"index.md", "essays/a/y.md", "essays/a/y.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeLink(tt.from, tt.to), tt.from+" -> "+tt.to)
	}
}
