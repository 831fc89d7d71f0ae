package commands

import (
	"context"
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ConvertCmd
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"300ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	w.apply(cfg)

	sink := root.newMetricsSink(cfg)

	ctx, stop := commandContext()
	defer stop()

	rebuild := func(ctx context.Context) error {
		defer sink.flush()
		return RunBuild(ctx, cfg, sink.recorder)
	}
	return watch.New(cfg.Source.Dir, rebuild).WithDebounce(w.Debounce).Run(ctx)
}
