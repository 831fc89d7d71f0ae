// Package config loads the essay site builder configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ferrors "github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
)

// DefaultPath is the configuration file read when no --config flag is given.
const DefaultPath = "site.yaml"

// Config represents the application configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Converter ConverterConfig `yaml:"converter"`
	Site      SiteConfig      `yaml:"site"`
	SEO       SEOConfig       `yaml:"seo"`
	Feed      FeedConfig      `yaml:"feed"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SourceConfig describes the input corpus and its document convention.
type SourceConfig struct {
	Dir                 string      `yaml:"dir"`
	Extension           string      `yaml:"extension"`
	SkipDirs            []string    `yaml:"skip_dirs"`
	TemplateMarker      string      `yaml:"template_marker"`
	TitlePlaceholder    string      `yaml:"title_placeholder"`
	SubtitlePlaceholder string      `yaml:"subtitle_placeholder"`
	RootCategory        string      `yaml:"root_category"` // Category for documents directly in Dir
	History             HistoryMode `yaml:"history"`
}

// OutputConfig describes where normalized markup and generated documents go.
type OutputConfig struct {
	DocsDir        string `yaml:"docs_dir"`
	EssaysDir      string `yaml:"essays_dir"` // relative to DocsDir
	NavFile        string `yaml:"nav_file"`   // relative to DocsDir
	Homepage       string `yaml:"homepage"`   // relative to DocsDir
	SiteConfigFile string `yaml:"site_config_file"`
	Clean          bool   `yaml:"clean"` // Remove stale files under EssaysDir after writing
	WordsPerMinute int    `yaml:"words_per_minute"`
	RecentCount    int    `yaml:"recent_count"`
}

// ConverterConfig configures the external document converter.
type ConverterConfig struct {
	Binary        string   `yaml:"binary"`
	ShiftHeadings int      `yaml:"shift_headings"`
	ExtraArgs     []string `yaml:"extra_args,omitempty"`
}

// SiteConfig carries the site identity used by every generated artifact.
type SiteConfig struct {
	Name        string       `yaml:"name"`
	URL         string       `yaml:"url"`
	Description string       `yaml:"description"`
	Author      string       `yaml:"author"`
	Social      []SocialLink `yaml:"social,omitempty"`
}

// SocialLink is a footer link in the generated site configuration.
type SocialLink struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// SEOConfig configures the post-build enricher.
type SEOConfig struct {
	SiteDir           string `yaml:"site_dir"`
	TitleSeparator    string `yaml:"title_separator"`
	VerificationToken string `yaml:"verification_token,omitempty"`
	TwitterCard       string `yaml:"twitter_card"`
	SitemapFile       string `yaml:"sitemap_file"` // relative to SiteDir
}

// FeedConfig configures the syndication feed.
type FeedConfig struct {
	File        string `yaml:"file"` // relative to SEO.SiteDir
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Limit       int    `yaml:"limit"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig selects where run metrics are exported. Empty disables export.
type MetricsConfig struct {
	File string `yaml:"file,omitempty"`
}

// Load loads configuration from the specified file. A missing file yields the
// defaults; any other read or decode failure is a configuration error.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if configPath != "" {
		if err := decodeFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(configPath string, cfg *Config) error {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewBufferString(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// loadEnvFiles loads .env and .env.local when present. Existing process
// environment variables are never overwritten.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s could not be loaded: %v\n", envPath, err)
		}
	}
}
