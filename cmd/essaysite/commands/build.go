package commands

import (
	"context"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	ConvertCmd
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b.apply(cfg)

	sink := root.newMetricsSink(cfg)
	defer sink.flush()

	ctx, stop := commandContext()
	defer stop()

	return RunBuild(ctx, cfg, sink.recorder)
}

// RunBuild converts the corpus, then regenerates the site configuration.
func RunBuild(ctx context.Context, cfg *config.Config, rec metrics.Recorder) error {
	if _, err := RunConvert(ctx, cfg, rec); err != nil {
		return err
	}
	return RunSiteConfig(cfg)
}
