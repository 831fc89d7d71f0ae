// Package commands implements the essaysite subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"site.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file (overrides metrics.file)"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert    ConvertCmd    `cmd:"" help:"Convert source essays into Markdown, navigation fragment and homepage"`
	SiteConfig SiteConfigCmd `cmd:"" name:"config" help:"Generate the site builder configuration from the navigation fragment"`
	Enrich     EnrichCmd     `cmd:"" help:"Inject SEO metadata, feed and sitemap dates into a rendered site"`
	Build      BuildCmd      `cmd:"" help:"Run convert followed by config"`
	Watch      WatchCmd      `cmd:"" help:"Run build, then rebuild whenever the source corpus changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the configuration file and applies its logging section
// unless --verbose already selected debug output.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if !c.Verbose {
		configureLogging(cfg.Logging)
	}
	slog.Debug("Configuration loaded", logfields.Path(c.Config))
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig) {
	opts := &slog.HandlerOptions{Level: config.NormalizeLogLevel(lc.Level).SlogLevel()}
	var handler slog.Handler
	if config.NormalizeLogFormat(lc.Format) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// metricsSink couples a recorder with the file its registry is flushed to.
type metricsSink struct {
	recorder metrics.Recorder
	registry *prometheus.Registry
	path     string
}

// newMetricsSink returns a Prometheus-backed sink when a metrics file is
// configured, otherwise a no-op one.
func (c *CLI) newMetricsSink(cfg *config.Config) *metricsSink {
	path := c.MetricsFile
	if path == "" {
		path = cfg.Metrics.File
	}
	if path == "" {
		return &metricsSink{recorder: metrics.NoopRecorder{}}
	}
	reg := prometheus.NewRegistry()
	return &metricsSink{recorder: metrics.NewPrometheusRecorder(reg), registry: reg, path: path}
}

// flush writes the gathered metrics. Failing to export metrics never
// fails the command.
func (m *metricsSink) flush() {
	if m.registry == nil {
		return
	}
	if err := metrics.WriteTextfile(m.path, m.registry); err != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(m.path), logfields.Error(err))
		return
	}
	slog.Debug("Metrics written", logfields.Path(m.path))
}

// commandContext is canceled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func internalError(message string, err error) error {
	if errors.IsClassified(err) {
		return err
	}
	return errors.InternalError(message).WithCause(err).Build()
}
