package config

import "path/filepath"

// EssaysRoot is the directory normalized essays are written to.
func (c *Config) EssaysRoot() string {
	return filepath.Join(c.Output.DocsDir, c.Output.EssaysDir)
}

// NavPath is the navigation fragment location.
func (c *Config) NavPath() string {
	return filepath.Join(c.Output.DocsDir, c.Output.NavFile)
}

// HomepagePath is the generated homepage location.
func (c *Config) HomepagePath() string {
	return filepath.Join(c.Output.DocsDir, c.Output.Homepage)
}

// FeedPath is the syndication feed location inside the rendered site.
func (c *Config) FeedPath() string {
	return filepath.Join(c.SEO.SiteDir, c.Feed.File)
}

// SitemapPath is the sitemap location inside the rendered site.
func (c *Config) SitemapPath() string {
	return filepath.Join(c.SEO.SiteDir, c.SEO.SitemapFile)
}

// FeedURL is the absolute URL the feed is published at.
func (c *Config) FeedURL() string {
	return c.Site.URL + "/" + filepath.ToSlash(c.Feed.File)
}
