package commands

import (
	"fmt"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/siteconfig"
)

// SiteConfigCmd implements the 'config' command.
type SiteConfigCmd struct {
	Output string `short:"o" help:"Site config file to write (overrides output.site_config_file)"`
}

func (s *SiteConfigCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Output != "" {
		cfg.Output.SiteConfigFile = s.Output
	}
	return RunSiteConfig(cfg)
}

// RunSiteConfig generates the site builder configuration.
func RunSiteConfig(cfg *config.Config) error {
	written, err := siteconfig.Generate(cfg)
	if err != nil {
		return internalError("site config generation failed", err)
	}
	if !written {
		fmt.Println("No nav fragment found, skipping config generation")
		return nil
	}
	fmt.Printf("%s generated\n", cfg.Output.SiteConfigFile)
	return nil
}
