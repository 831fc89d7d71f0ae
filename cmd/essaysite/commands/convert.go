package commands

import (
	"context"
	"fmt"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/build"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metrics"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	Source    string `short:"s" help:"Source corpus directory (overrides source.dir and PAPERS_DIR)"`
	NoHistory bool   `name:"no-history" help:"Do not read publish dates from version history"`
}

func (c *ConvertCmd) apply(cfg *config.Config) {
	if c.Source != "" {
		cfg.Source.Dir = c.Source
	}
	if c.NoHistory {
		cfg.Source.History = config.HistoryNone
	}
}

func (c *ConvertCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	c.apply(cfg)

	sink := root.newMetricsSink(cfg)
	defer sink.flush()

	ctx, stop := commandContext()
	defer stop()

	_, err = RunConvert(ctx, cfg, sink.recorder)
	return err
}

// RunConvert runs the conversion pipeline and prints its summary.
func RunConvert(ctx context.Context, cfg *config.Config, rec metrics.Recorder) (*build.Report, error) {
	fmt.Printf("Converting essays from %s\n", cfg.Source.Dir)
	report, err := build.NewPipeline(cfg).WithRecorder(rec).Run(ctx)
	if err != nil {
		return report, internalError("conversion failed", err)
	}
	fmt.Println(report.Summary())
	return report, nil
}
