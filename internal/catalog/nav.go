package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NavKey is the single top-level key of the navigation fragment.
const NavKey = "nav_essays"

// NavItem is a navigation entry: a page when Path is set, otherwise a
// section holding Children.
type NavItem struct {
	Title    string
	Path     string
	Children []NavItem
}

// MarshalYAML renders the item as a single-key mapping, the shape the site
// builder expects in its nav list.
func (n NavItem) MarshalYAML() (any, error) {
	if n.Path != "" {
		return map[string]string{n.Title: n.Path}, nil
	}
	return map[string][]NavItem{n.Title: n.Children}, nil
}

// Nav produces one section per top category holding its direct documents
// followed by one nested section per subcategory.
func (t *Tree) Nav() []NavItem {
	var nav []NavItem
	for _, category := range t.Categories() {
		section := NavItem{Title: category}
		for _, e := range t.sortedBucket(category, "") {
			section.Children = append(section.Children, NavItem{Title: e.DisplayTitle, Path: e.Meta.OutputPath})
		}
		for _, sub := range t.Subcategories(category) {
			subSection := NavItem{Title: sub}
			for _, e := range t.sortedBucket(category, sub) {
				subSection.Children = append(subSection.Children, NavItem{Title: e.DisplayTitle, Path: e.Meta.OutputPath})
			}
			section.Children = append(section.Children, subSection)
		}
		nav = append(nav, section)
	}
	return nav
}

// MarshalNav serializes the navigation fragment document.
func MarshalNav(nav []NavItem) ([]byte, error) {
	if nav == nil {
		nav = []NavItem{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]NavItem{NavKey: nav}); err != nil {
		return nil, fmt.Errorf("marshal nav fragment: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal nav fragment: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteNav writes the navigation fragment to path.
func WriteNav(path string, nav []NavItem) error {
	data, err := MarshalNav(nav)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create nav directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write nav fragment: %w", err)
	}
	return nil
}
