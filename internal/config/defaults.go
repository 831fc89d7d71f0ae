package config

import "os"

// Default returns the configuration used when no file is present. The source
// directory honours PAPERS_DIR.
func Default() *Config {
	sourceDir := os.Getenv("PAPERS_DIR")
	if sourceDir == "" {
		sourceDir = "papers"
	}

	return &Config{
		Source: SourceConfig{
			Dir:                 sourceDir,
			Extension:           ".tex",
			SkipDirs:            []string{"0_Format"},
			TemplateMarker:      "template",
			TitlePlaceholder:    "Title",
			SubtitlePlaceholder: "Subtitle",
			RootCategory:        "Essays",
			History:             HistoryGit,
		},
		Output: OutputConfig{
			DocsDir:        "docs",
			EssaysDir:      "essays",
			NavFile:        "_nav.yml",
			Homepage:       "index.md",
			SiteConfigFile: "mkdocs.yml",
			Clean:          true,
			WordsPerMinute: 200,
			RecentCount:    5,
		},
		Converter: ConverterConfig{
			Binary:        "pandoc",
			ShiftHeadings: 1,
		},
		Site: SiteConfig{
			Name:        "James Oliver",
			URL:         "https://jamesxoliver.github.io",
			Description: "Essays on systems, science, and structure. Finding simplicity in complexity.",
			Author:      "James Oliver",
			Social: []SocialLink{
				{Icon: "fontawesome/brands/github", Link: "https://github.com/jamesxoliver"},
				{Icon: "fontawesome/brands/orcid", Link: "https://orcid.org/0009-0003-9912-095X"},
				{Icon: "simple/zenodo", Link: "https://zenodo.org/communities/jamesoliver/records"},
			},
		},
		SEO: SEOConfig{
			SiteDir:        "site",
			TitleSeparator: " - ",
			TwitterCard:    "summary",
			SitemapFile:    "sitemap.xml",
		},
		Feed: FeedConfig{
			File:  "feed.xml",
			Limit: 50,
		},
		Logging: LoggingConfig{
			Level:  string(LogLevelInfo),
			Format: string(LogFormatText),
		},
	}
}
