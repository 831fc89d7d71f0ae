package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

func doc(src, title, top, sub, slug string, published foundation.Option[time.Time]) metadata.DocumentMetadata {
	return metadata.DocumentMetadata{
		SourcePath:  src,
		Title:       title,
		TopCategory: top,
		SubCategory: foundation.FromZero(sub),
		Slug:        slug,
		OutputPath:  metadata.OutputPath("essays", top, sub, slug),
		Published:   published,
		Updated:     published,
	}
}

func on(y int, m time.Month, d int) foundation.Option[time.Time] {
	return foundation.Some(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// scenarioTree is the three-document corpus: a and b share the title Alpha.
func scenarioTree(t *testing.T) *Tree {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.Add(doc("X/a.doc", "Alpha", "X", "", "a", on(2024, 1, 1))))
	require.NoError(t, b.Add(doc("X/Y/b.doc", "Alpha", "X", "Y", "b", on(2024, 2, 1))))
	require.NoError(t, b.Add(doc("Z/c.doc", "Beta", "Z", "", "c", on(2024, 3, 1))))
	return b.Build()
}

func TestTree_Scenario(t *testing.T) {
	tree := scenarioTree(t)

	assert.Equal(t, []string{"X", "Z"}, tree.Categories())
	assert.Equal(t, []string{"Y"}, tree.Subcategories("X"))
	assert.Empty(t, tree.Subcategories("Z"))

	direct := tree.Bucket("X", "")
	require.Len(t, direct, 1)
	assert.Equal(t, "Alpha (A)", direct[0].DisplayTitle)

	inY := tree.Bucket("X", "Y")
	require.Len(t, inY, 1)
	assert.Equal(t, "Alpha (B)", inY[0].DisplayTitle)

	z := tree.Bucket("Z", "")
	require.Len(t, z, 1)
	assert.Equal(t, "Beta", z[0].DisplayTitle)

	var recent []string
	for _, e := range tree.Recent(5) {
		recent = append(recent, e.Meta.Slug)
	}
	assert.Equal(t, []string{"c", "b", "a"}, recent)
}

func TestDisambiguate_Property(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(doc("p/glucose.tex", "Glucose", "P", "", "glucose", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("q/glucose-1.tex", "Glucose", "Q", "", "glucose-1", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("r/glucose-2.tex", "Glucose", "R", "S", "glucose-2", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("r/unique.tex", "Glucose metabolism", "R", "", "unique", foundation.None[time.Time]())))
	tree := b.Build()

	seen := map[string]bool{}
	for _, e := range tree.Entries() {
		if e.Meta.Title == "Glucose" {
			assert.Equal(t, "Glucose ("+HumanizeSlug(e.Meta.Slug)+")", e.DisplayTitle)
			assert.False(t, seen[e.DisplayTitle], "display titles must be unique")
			seen[e.DisplayTitle] = true
		} else {
			assert.Equal(t, e.Meta.Title, e.DisplayTitle, "unique titles untouched")
		}
	}
	assert.True(t, seen["Glucose (Glucose 1)"])
}

func TestDisambiguate_SharedSlugAcrossCategories(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(doc("P/intro.tex", "Intro", "P", "", "intro", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("Q/intro.tex", "Intro", "Q", "", "intro", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("Q/R/intro.tex", "Intro", "Q", "R", "intro", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("Q/intro-2.tex", "Intro", "Q", "", "intro-2", foundation.None[time.Time]())))
	tree := b.Build()

	got := map[string]string{}
	for _, e := range tree.Entries() {
		got[e.Meta.SourcePath] = e.DisplayTitle
	}
	assert.Equal(t, map[string]string{
		"P/intro.tex":   "Intro (P / Intro)",
		"Q/intro.tex":   "Intro (Q / Intro)",
		"Q/R/intro.tex": "Intro (Q / R / Intro)",
		"Q/intro-2.tex": "Intro (Q / Intro 2)",
	}, got)

	seen := map[string]bool{}
	for _, title := range got {
		assert.False(t, seen[title], "display titles must be unique: %s", title)
		seen[title] = true
	}
}

func TestHumanizeSlug(t *testing.T) {
	assert.Equal(t, "Glucose 1", HumanizeSlug("glucose-1"))
	assert.Equal(t, "Heat Death Of Stars", HumanizeSlug("heat-death-of-stars"))
}

func TestBuilder_SlugOwnershipAndOutputCollision(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(doc("P/note.tex", "First", "P", "", "note", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("Q/note.tex", "Second", "Q", "", "note", foundation.None[time.Time]())))

	err := b.Add(doc("P/Note.tex", "Third", "P", "", "note", foundation.None[time.Time]()))
	assert.ErrorIs(t, err, ErrDuplicateOutput)
	assert.Equal(t, 2, b.Len())

	tree := b.Build()
	owner, ok := tree.Resolve("note")
	require.True(t, ok)
	assert.Equal(t, "P/note.tex", owner.Meta.SourcePath)

	_, ok = tree.Resolve("missing")
	assert.False(t, ok)
}

func TestRecent_ExcludesUndatedAndLimits(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(doc("a", "A", "X", "", "a", on(2024, 1, 1))))
	require.NoError(t, b.Add(doc("b", "B", "X", "", "b", foundation.None[time.Time]())))
	require.NoError(t, b.Add(doc("c", "C", "X", "", "c", on(2024, 1, 1))))
	require.NoError(t, b.Add(doc("d", "D", "X", "", "d", on(2023, 6, 1))))
	tree := b.Build()

	var slugs []string
	for _, e := range tree.Recent(5) {
		slugs = append(slugs, e.Meta.Slug)
	}
	assert.Equal(t, []string{"a", "c", "d"}, slugs, "ties keep insertion order, undated excluded")
	assert.Len(t, tree.Recent(2), 2)
}

func TestNav_Structure(t *testing.T) {
	tree := scenarioTree(t)
	nav := tree.Nav()

	require.Len(t, nav, 2)
	assert.Equal(t, "X", nav[0].Title)
	require.Len(t, nav[0].Children, 2)
	assert.Equal(t, NavItem{Title: "Alpha (A)", Path: "essays/x/a.md"}, nav[0].Children[0])
	assert.Equal(t, "Y", nav[0].Children[1].Title)
	assert.Equal(t, []NavItem{{Title: "Alpha (B)", Path: "essays/x/y/b.md"}}, nav[0].Children[1].Children)
	assert.Equal(t, []NavItem{{Title: "Beta", Path: "essays/z/c.md"}}, nav[1].Children)
}

func TestWriteNav_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "_nav.yml")
	require.NoError(t, WriteNav(path, scenarioTree(t).Nav()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))

	essays := parsed[NavKey]
	require.Len(t, essays, 2)
	x := essays[0]["X"].([]any)
	assert.Equal(t, map[string]any{"Alpha (A)": "essays/x/a.md"}, x[0])
	y := x[1].(map[string]any)["Y"].([]any)
	assert.Equal(t, map[string]any{"Alpha (B)": "essays/x/y/b.md"}, y[0])
}

func TestMarshalNav_Empty(t *testing.T) {
	data, err := MarshalNav(nil)
	require.NoError(t, err)
	assert.Equal(t, "nav_essays: []\n", string(data))
}

func TestHomepage(t *testing.T) {
	got := scenarioTree(t).Homepage(HomepageOptions{Heading: "James Oliver", Description: "Essays.", RecentCount: 5})

	want := strings.Join([]string{
		"# James Oliver",
		"",
		"Essays.",
		"",
		"## Recent",
		"",
		"- [Beta](essays/z/c.md) — 2024-03-01",
		"- [Alpha (B)](essays/x/y/b.md) — 2024-02-01",
		"- [Alpha (A)](essays/x/a.md) — 2024-01-01",
		"",
		"## Essays",
		"",
		`??? note "X"`,
		"",
		"    - [Alpha (A)](essays/x/a.md)",
		"",
		`    ??? note "Y"`,
		"",
		"        - [Alpha (B)](essays/x/y/b.md)",
		"",
		`??? note "Z"`,
		"",
		"    - [Beta](essays/z/c.md)",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}
