// Package catalog builds the two-level category tree and derives the
// navigation structure and homepage from it.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

// ErrDuplicateOutput indicates two source documents map to the same output path.
var ErrDuplicateOutput = errors.New("duplicate output path")

// Entry is one document in the tree.
type Entry struct {
	Meta         metadata.DocumentMetadata
	DisplayTitle string // Meta.Title, disambiguated when it collides
}

// Builder collects document metadata during pass 1. It is owned by a
// single pipeline run and is not safe for concurrent use.
type Builder struct {
	entries  []*Entry
	byOutput map[string]*Entry
	bySlug   map[string]*Entry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		byOutput: make(map[string]*Entry),
		bySlug:   make(map[string]*Entry),
	}
}

// Add records a document. The first document with a given slug owns it for
// cross-reference resolution; later ones are kept in the tree but logged.
func (b *Builder) Add(meta metadata.DocumentMetadata) error {
	if prev, taken := b.byOutput[meta.OutputPath]; taken {
		return fmt.Errorf("%w: %s and %s both map to %s", ErrDuplicateOutput, prev.Meta.SourcePath, meta.SourcePath, meta.OutputPath)
	}

	e := &Entry{Meta: meta, DisplayTitle: meta.Title}
	b.entries = append(b.entries, e)
	b.byOutput[meta.OutputPath] = e

	if owner, taken := b.bySlug[meta.Slug]; taken {
		slog.Warn("Slug already owned by another document",
			logfields.Slug(meta.Slug),
			logfields.Document(meta.SourcePath),
			slog.String("owner", owner.Meta.SourcePath))
		return nil
	}
	b.bySlug[meta.Slug] = e
	return nil
}

// Len reports how many documents have been added.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build disambiguates colliding titles across the whole corpus and returns
// the read-only tree. The Builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	disambiguate(b.entries)

	t := &Tree{
		entries:    b.entries,
		slugs:      b.bySlug,
		categories: make(map[string]map[string][]*Entry),
	}
	for _, e := range b.entries {
		subs, ok := t.categories[e.Meta.TopCategory]
		if !ok {
			subs = make(map[string][]*Entry)
			t.categories[e.Meta.TopCategory] = subs
		}
		sub := e.Meta.SubCategory.UnwrapOr("")
		subs[sub] = append(subs[sub], e)
	}
	return t
}

// disambiguate appends a slug-derived suffix to every title shared by two
// or more documents. Titles are compared exactly. Slugs only reflect file
// names, so a group in which a slug repeats is suffixed with the whole
// category path instead.
func disambiguate(entries []*Entry) {
	groups := make(map[string][]*Entry, len(entries))
	for _, e := range entries {
		groups[e.Meta.Title] = append(groups[e.Meta.Title], e)
	}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		suffix := func(e *Entry) string { return HumanizeSlug(e.Meta.Slug) }
		if sharesSlug(group) {
			suffix = func(e *Entry) string { return pathSuffix(e.Meta) }
		}
		for _, e := range group {
			e.DisplayTitle = fmt.Sprintf("%s (%s)", e.Meta.Title, suffix(e))
		}
	}
}

func sharesSlug(group []*Entry) bool {
	seen := make(map[string]bool, len(group))
	for _, e := range group {
		if seen[e.Meta.Slug] {
			return true
		}
		seen[e.Meta.Slug] = true
	}
	return false
}

// pathSuffix humanizes each segment of the output path below the essays
// directory. Output paths are unique, so the suffixes are too.
func pathSuffix(meta metadata.DocumentMetadata) string {
	parts := []string{HumanizeSlug(metadata.Slug(meta.TopCategory))}
	if sub, ok := meta.SubCategory.Get(); ok && sub != "" {
		parts = append(parts, HumanizeSlug(metadata.Slug(sub)))
	}
	parts = append(parts, HumanizeSlug(meta.Slug))
	return strings.Join(parts, " / ")
}

// HumanizeSlug turns "glucose-1" into "Glucose 1".
func HumanizeSlug(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// Tree is the category → subcategory → documents mapping for one run.
// The empty subcategory key holds documents directly under a category.
type Tree struct {
	entries    []*Entry
	slugs      map[string]*Entry
	categories map[string]map[string][]*Entry
}

// Entries returns every document in insertion order.
func (t *Tree) Entries() []Entry {
	return copyEntries(t.entries)
}

// Categories returns the top categories in lexicographic order.
func (t *Tree) Categories() []string {
	keys := make([]string, 0, len(t.categories))
	for k := range t.categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Subcategories returns the named subcategories of category in lexicographic order.
func (t *Tree) Subcategories(category string) []string {
	var keys []string
	for k := range t.categories[category] {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bucket returns the documents of one (category, subcategory) pair in
// insertion order. An empty subcategory selects the direct documents.
func (t *Tree) Bucket(category, subcategory string) []Entry {
	return copyEntries(t.categories[category][subcategory])
}

// Resolve finds the document owning slug.
func (t *Tree) Resolve(slug string) (Entry, bool) {
	e, ok := t.slugs[slug]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// sortedBucket orders a bucket by display title, then output path.
func (t *Tree) sortedBucket(category, subcategory string) []Entry {
	entries := t.Bucket(category, subcategory)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DisplayTitle != entries[j].DisplayTitle {
			return entries[i].DisplayTitle < entries[j].DisplayTitle
		}
		return entries[i].Meta.OutputPath < entries[j].Meta.OutputPath
	})
	return entries
}

// Recent returns up to n documents with a known publish date, newest
// first. Ties keep insertion order; undated documents are excluded.
func (t *Tree) Recent(n int) []Entry {
	var dated []Entry
	for _, e := range t.entries {
		if e.Meta.Published.IsSome() {
			dated = append(dated, *e)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Meta.Published.Unwrap().After(dated[j].Meta.Published.Unwrap())
	})
	if len(dated) > n {
		dated = dated[:n]
	}
	return dated
}

func copyEntries(in []*Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = *e
	}
	return out
}
