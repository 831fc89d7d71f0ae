// Package siteconfig generates the static-site tool configuration from the
// navigation fragment written by the conversion pipeline.
package siteconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/catalog"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

// MkDocs is the generated configuration. Field order is the key order of
// the written document.
type MkDocs struct {
	SiteName           string       `yaml:"site_name"`
	SiteURL            string       `yaml:"site_url"`
	SiteDescription    string       `yaml:"site_description"`
	SiteAuthor         string       `yaml:"site_author"`
	Theme              Theme        `yaml:"theme"`
	Nav                []*yaml.Node `yaml:"nav"`
	MarkdownExtensions []any        `yaml:"markdown_extensions"`
	Plugins            []string     `yaml:"plugins"`
	ExtraCSS           []string     `yaml:"extra_css"`
	ExtraJavaScript    []string     `yaml:"extra_javascript"`
	Extra              Extra        `yaml:"extra"`
}

type Theme struct {
	Name     string    `yaml:"name"`
	Palette  []Palette `yaml:"palette"`
	Font     Font      `yaml:"font"`
	Features []string  `yaml:"features"`
}

type Palette struct {
	Media  string `yaml:"media"`
	Scheme string `yaml:"scheme"`
	Toggle Toggle `yaml:"toggle"`
}

type Toggle struct {
	Icon string `yaml:"icon"`
	Name string `yaml:"name"`
}

type Font struct {
	Text string `yaml:"text"`
	Code string `yaml:"code"`
}

type Extra struct {
	Generator bool                `yaml:"generator"`
	Social    []config.SocialLink `yaml:"social,omitempty"`
}

// New assembles the configuration for site with the given essay navigation.
func New(site config.SiteConfig, essays []*yaml.Node) *MkDocs {
	nav := make([]*yaml.Node, 0, len(essays)+1)
	nav = append(nav, pageNode("Home", "index.md"))
	nav = append(nav, essays...)

	return &MkDocs{
		SiteName:        site.Name,
		SiteURL:         site.URL,
		SiteDescription: site.Description,
		SiteAuthor:      site.Author,
		Theme: Theme{
			Name: "material",
			Palette: []Palette{
				{
					Media:  "(prefers-color-scheme: light)",
					Scheme: "default",
					Toggle: Toggle{Icon: "material/brightness-7", Name: "Switch to dark mode"},
				},
				{
					Media:  "(prefers-color-scheme: dark)",
					Scheme: "slate",
					Toggle: Toggle{Icon: "material/brightness-4", Name: "Switch to light mode"},
				},
			},
			Font: Font{Text: "Inter", Code: "JetBrains Mono"},
			Features: []string{
				"navigation.sections",
				"search.suggest",
				"search.highlight",
				"toc.integrate",
			},
		},
		Nav: nav,
		MarkdownExtensions: []any{
			"tables",
			"admonition",
			map[string]any{"pymdownx.arithmatex": map[string]bool{"generic": true}},
			"pymdownx.highlight",
			"pymdownx.superfences",
			"pymdownx.details",
			"attr_list",
			"md_in_html",
			map[string]any{"toc": map[string]bool{"permalink": true}},
			emojiExtension(),
			"meta",
		},
		Plugins:  []string{"search"},
		ExtraCSS: []string{"stylesheets/extra.css"},
		ExtraJavaScript: []string{
			"javascripts/mathjax.js",
			"https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js",
		},
		Extra: Extra{Generator: false, Social: site.Social},
	}
}

func pageNode(title, path string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: title},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: path},
		},
	}
}

// emojiExtension configures pymdownx.emoji with python-name tagged values,
// which a plain Go map cannot express.
func emojiExtension() *yaml.Node {
	pythonName := func(name string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!python/name:" + name, Style: yaml.TaggedStyle}
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "pymdownx.emoji"},
			{
				Kind: yaml.MappingNode,
				Tag:  "!!map",
				Content: []*yaml.Node{
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: "emoji_index"},
					pythonName("material.extensions.emoji.twemoji"),
					{Kind: yaml.ScalarNode, Tag: "!!str", Value: "emoji_generator"},
					pythonName("material.extensions.emoji.to_svg"),
				},
			},
		},
	}
}

// Marshal renders m as YAML.
func Marshal(m *MkDocs) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal site config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal site config: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadNav returns the essay navigation items stored in the fragment at
// path. found is false when the fragment does not exist.
func ReadNav(path string) (items []*yaml.Node, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read nav fragment: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, true, fmt.Errorf("parse nav fragment %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, true, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, true, fmt.Errorf("parse nav fragment %s: top level is not a mapping", path)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != catalog.NavKey {
			continue
		}
		value := root.Content[i+1]
		switch value.Kind {
		case yaml.SequenceNode:
			return value.Content, true, nil
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				return nil, true, nil
			}
		}
		return nil, true, fmt.Errorf("parse nav fragment %s: %s is not a list", path, catalog.NavKey)
	}
	return nil, true, nil
}

// Generate reads the navigation fragment and writes the site configuration.
// A missing fragment is nothing to do and reports written=false.
func Generate(cfg *config.Config) (written bool, err error) {
	navPath := cfg.NavPath()
	essays, found, err := ReadNav(navPath)
	if err != nil {
		return false, err
	}
	if !found {
		slog.Info("No navigation fragment found, skipping site config generation", logfields.Path(navPath))
		return false, nil
	}

	data, err := Marshal(New(cfg.Site, essays))
	if err != nil {
		return false, err
	}

	out := cfg.Output.SiteConfigFile
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return false, fmt.Errorf("create site config directory: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil { // #nosec G306 -- read by the site builder
		return false, fmt.Errorf("write site config: %w", err)
	}
	slog.Info("Site config generated", logfields.Path(out), logfields.Count(len(essays)))
	return true, nil
}
