package seo

import (
	"regexp"
	"strings"
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
)

var (
	sitemapURL     = regexp.MustCompile(`(?s)<url>.*?</url>`)
	sitemapLoc     = regexp.MustCompile(`(?s)([ \t]*)<loc>\s*(.*?)\s*</loc>`)
	sitemapLastmod = regexp.MustCompile(`(?s)<lastmod>.*?</lastmod>`)
)

// UpdateSitemap sets the lastmod of every url block whose location has a
// date in lastmod. Other blocks are left byte-identical. It returns the
// new document and the number of blocks that carry a recovered date.
func UpdateSitemap(sitemap string, lastmod map[string]time.Time) (string, int) {
	updated := 0
	out := sitemapURL.ReplaceAllStringFunc(sitemap, func(block string) string {
		loc := sitemapLoc.FindStringSubmatchIndex(block)
		if loc == nil {
			return block
		}
		indent := block[loc[2]:loc[3]]
		date, ok := lastmod[strings.TrimSpace(block[loc[4]:loc[5]])]
		if !ok {
			return block
		}
		updated++

		tag := "<lastmod>" + date.Format(metadata.DateLayout) + "</lastmod>"
		if sitemapLastmod.MatchString(block) {
			return sitemapLastmod.ReplaceAllLiteralString(block, tag)
		}
		end := loc[1]
		return block[:end] + "\n" + indent + tag + block[end:]
	})
	return out, updated
}
