package commands

import (
	"fmt"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/seo"
)

// EnrichCmd implements the 'enrich' command.
type EnrichCmd struct {
	SiteDir string `name:"site-dir" help:"Rendered site directory (overrides seo.site_dir)"`
}

func (e *EnrichCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if e.SiteDir != "" {
		cfg.SEO.SiteDir = e.SiteDir
	}

	sink := root.newMetricsSink(cfg)
	defer sink.flush()

	ctx, stop := commandContext()
	defer stop()

	report, err := seo.NewEnricher(seo.OptionsFromConfig(cfg)).WithRecorder(sink.recorder).Run(ctx)
	if err != nil {
		return internalError("enrichment failed", err)
	}
	fmt.Printf("SEO injected into %d of %d HTML files, feed entries: %d\n", report.Injected, report.Pages, report.FeedEntries)
	return nil
}
