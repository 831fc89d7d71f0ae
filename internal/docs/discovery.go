// Package docs discovers source documents in the input corpus.
package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	derrors "github.com/jamesxoliver/jamesxoliver.github.io/internal/docs/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

// SourceDocument represents a discovered source document.
type SourceDocument struct {
	Path         string                    // Filesystem path to the file
	RelativePath string                    // Slash-separated path relative to the corpus root
	Name         string                    // File name including extension
	TopCategory  string                    // First directory segment, or the root category
	SubCategory  foundation.Option[string] // Second directory segment when nested two deep
	Content      string                    // Raw text (loaded on demand)
}

// Options controls which files count as source documents.
type Options struct {
	Extension      string   // e.g. ".tex"
	SkipDirs       []string // top-level directories excluded entirely
	TemplateMarker string   // case-insensitive file name marker for excluded templates
	RootCategory   string   // category for documents directly under the corpus root
}

// Discovery handles source document discovery.
type Discovery struct {
	root string
	opts Options
	skip map[string]struct{}
}

// NewDiscovery creates a discovery rooted at the corpus directory.
func NewDiscovery(root string, opts Options) *Discovery {
	skip := make(map[string]struct{}, len(opts.SkipDirs))
	for _, dir := range opts.SkipDirs {
		skip[dir] = struct{}{}
	}
	return &Discovery{root: root, opts: opts, skip: skip}
}

// Root returns the corpus directory.
func (d *Discovery) Root() string {
	return d.root
}

// Discover walks the corpus in lexical order and returns every source
// document. A missing corpus directory is the only fatal condition.
func (d *Discovery) Discover() ([]SourceDocument, error) {
	info, err := os.Stat(d.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrCorpusNotFound, d.root)
	}

	var files []SourceDocument
	err = filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == d.root {
			return nil
		}

		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if d.skipDir(rel, entry.Name()) {
				slog.Debug("Skipping directory", logfields.Path(rel))
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !d.accepts(entry.Name()) {
			return nil
		}

		doc := SourceDocument{
			Path:         p,
			RelativePath: rel,
			Name:         entry.Name(),
		}
		doc.TopCategory, doc.SubCategory = d.categorize(rel)
		files = append(files, doc)

		slog.Debug("Discovered document",
			logfields.Document(rel),
			logfields.Category(doc.TopCategory),
			logfields.Subcategory(doc.SubCategory.UnwrapOr("")))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrCorpusWalkFailed, d.root, err)
	}

	slog.Info("Source documents discovered", logfields.Path(d.root), logfields.Count(len(files)))
	return files, nil
}

func (d *Discovery) skipDir(rel, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.Contains(rel, "/") {
		return false
	}
	_, skipped := d.skip[name]
	return skipped
}

func (d *Discovery) accepts(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if d.opts.Extension != "" && !strings.EqualFold(filepath.Ext(name), d.opts.Extension) {
		return false
	}
	marker := strings.ToLower(d.opts.TemplateMarker)
	if marker != "" && strings.Contains(strings.ToLower(name), marker) {
		return false
	}
	return true
}

// categorize derives the category pair from the document's directory.
// Segments deeper than two are folded into the subcategory of the second.
func (d *Discovery) categorize(rel string) (string, foundation.Option[string]) {
	dir := path.Dir(rel)
	if dir == "." {
		return d.opts.RootCategory, foundation.None[string]()
	}
	parts := strings.Split(dir, "/")
	if len(parts) == 1 {
		return parts[0], foundation.None[string]()
	}
	return parts[0], foundation.Some(parts[1])
}

// Load reads the raw text of the document. Invalid UTF-8 sequences are
// replaced rather than rejected.
func (f *SourceDocument) Load() error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, f.RelativePath, err)
	}
	f.Content = strings.ToValidUTF8(string(data), "�")
	return nil
}
