// Package seo enriches an already-rendered site.
//
// The enricher walks every HTML page under the site directory, recovers
// title, description and dates from the rendered markup, and injects
// canonical, social and structured-data tags before the closing head tag.
// Pages that already carry structured data are left alone, so a rerun
// over the same site changes nothing. The same scan feeds an RSS document
// and the lastmod values of an existing sitemap.
//
// Nothing here reads the conversion pipeline's metadata; the enricher can
// run against any built site.
package seo
