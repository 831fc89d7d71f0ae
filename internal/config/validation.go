package config

import (
	"net/url"
	"strings"

	ferrors "github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
)

// Validate normalizes enum fields in place and rejects values no run can use.
func (c *Config) Validate() error {
	if _, err := logLevelNormalizer.Parse(c.Logging.Level); err != nil {
		return invalid("logging.level", err.Error())
	}
	if _, err := logFormatNormalizer.Parse(c.Logging.Format); err != nil {
		return invalid("logging.format", err.Error())
	}
	mode, err := historyModeNormalizer.Parse(string(c.Source.History))
	if err != nil {
		return invalid("source.history", err.Error())
	}
	c.Source.History = mode

	if strings.TrimSpace(c.Source.Dir) == "" {
		return invalid("source.dir", "must not be empty")
	}
	if c.Source.Extension != "" && !strings.HasPrefix(c.Source.Extension, ".") {
		c.Source.Extension = "." + c.Source.Extension
	}

	u, err := url.Parse(strings.TrimSpace(c.Site.URL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid("site.url", "must be an absolute URL")
	}
	c.Site.URL = strings.TrimRight(strings.TrimSpace(c.Site.URL), "/")

	if c.Output.WordsPerMinute <= 0 {
		return invalid("output.words_per_minute", "must be positive")
	}
	if c.Output.RecentCount < 0 {
		return invalid("output.recent_count", "must not be negative")
	}
	if c.Feed.Limit <= 0 {
		return invalid("feed.limit", "must be positive")
	}
	if c.Converter.Binary == "" {
		return invalid("converter.binary", "must not be empty")
	}
	return nil
}

func invalid(field, reason string) error {
	return ferrors.ValidationError("invalid configuration").
		WithCategory(ferrors.CategoryConfig).
		WithContext("field", field).
		WithContext("reason", reason).
		Build()
}
