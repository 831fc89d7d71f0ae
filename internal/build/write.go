package build

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/frontmatter"
)

// writeIfChanged writes content to path unless the file already holds the
// same fingerprint, or the same bytes when content has no preamble. It
// reports whether the file was written.
func writeIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if fp := frontmatter.StoredFingerprint(content); fp != "" {
			if frontmatter.StoredFingerprint(existing) == fp {
				return false, nil
			}
		} else if bytes.Equal(existing, content) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 -- published site content
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// pruneStale removes Markdown files under root that are not in keep, then
// any directories left empty. A missing root is not an error.
func pruneStale(root string, keep map[string]struct{}) (int, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	removed := 0
	var dirs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root {
				dirs = append(dirs, p)
			}
			return nil
		}
		if filepath.Ext(p) != ".md" {
			return nil
		}
		if _, ok := keep[p]; ok {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, err
	}

	// Deepest first so parents empty out after their children.
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err == nil && len(entries) == 0 {
			_ = os.Remove(dirs[i])
		}
	}
	return removed, nil
}
