package seo

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metrics"
)

// Options configures one enricher run.
type Options struct {
	SiteDir     string
	FeedPath    string // empty disables the feed
	SitemapPath string
	Page        PageOptions
	Tags        TagOptions
	Feed        FeedOptions
}

// OptionsFromConfig derives enricher options from the site configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	feedTitle := cfg.Feed.Title
	if feedTitle == "" {
		feedTitle = cfg.Site.Name
	}
	feedDescription := cfg.Feed.Description
	if feedDescription == "" {
		feedDescription = cfg.Site.Description
	}

	return Options{
		SiteDir:     cfg.SEO.SiteDir,
		FeedPath:    cfg.FeedPath(),
		SitemapPath: cfg.SitemapPath(),
		Page: PageOptions{
			SiteURL:        cfg.Site.URL,
			TitleSeparator: cfg.SEO.TitleSeparator,
			EssaysDir:      cfg.Output.EssaysDir,
		},
		Tags: TagOptions{
			SiteURL:           cfg.Site.URL,
			SiteName:          cfg.Site.Name,
			Author:            cfg.Site.Author,
			FeedURL:           cfg.FeedURL(),
			VerificationToken: cfg.SEO.VerificationToken,
			TwitterCard:       cfg.SEO.TwitterCard,
		},
		Feed: FeedOptions{
			Title:       feedTitle,
			Link:        cfg.Site.URL + "/",
			Description: feedDescription,
			Author:      cfg.Site.Author,
			Limit:       cfg.Feed.Limit,
		},
	}
}

// Report summarizes one enricher run.
type Report struct {
	Pages           int
	Injected        int
	AlreadyEnriched int
	Unchanged       int
	NoHead          int
	FeedEntries     int
	SitemapUpdated  int
	SitemapFound    bool
}

// Enricher runs the post-build pass over a rendered site.
type Enricher struct {
	opts     Options
	recorder metrics.Recorder
}

// NewEnricher creates an enricher.
func NewEnricher(opts Options) *Enricher {
	return &Enricher{opts: opts, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (e *Enricher) WithRecorder(r metrics.Recorder) *Enricher {
	if r != nil {
		e.recorder = r
	}
	return e
}

// Run enriches every page, then writes the feed and updates the sitemap.
func (e *Enricher) Run(ctx context.Context) (*Report, error) {
	info, err := os.Stat(e.opts.SiteDir)
	if err != nil || !info.IsDir() {
		return nil, errors.NewError(errors.CategoryNotFound, "site directory not found").
			WithCause(err).
			WithContext("path", e.opts.SiteDir).
			Fatal().
			Build()
	}

	report := &Report{}

	t0 := time.Now()
	pages, err := e.enrichPages(ctx, report)
	e.observe("pages", t0)
	if err != nil {
		return report, err
	}

	if e.opts.FeedPath != "" {
		t0 = time.Now()
		err = e.writeFeed(pages, report)
		e.observe("feed", t0)
		if err != nil {
			return report, err
		}
	}

	t0 = time.Now()
	err = e.updateSitemap(pages, report)
	e.observe("sitemap", t0)
	if err != nil {
		return report, err
	}

	slog.Info("Site enriched",
		slog.Int("pages", report.Pages),
		slog.Int("injected", report.Injected),
		slog.Int("already_enriched", report.AlreadyEnriched),
		slog.Int("no_head", report.NoHead),
		slog.Int("feed_entries", report.FeedEntries),
		slog.Int("sitemap_updated", report.SitemapUpdated))
	return report, nil
}

func (e *Enricher) observe(stage string, start time.Time) {
	d := time.Since(start)
	e.recorder.ObserveStageDuration("enrich_"+stage, d)
	slog.Debug("Stage complete", logfields.Stage("enrich_"+stage), logfields.Duration(d))
}

func (e *Enricher) enrichPages(ctx context.Context, report *Report) ([]Page, error) {
	var paths []string
	err := filepath.WalkDir(e.opts.SiteDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".html" {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.FileSystemError("walking site directory failed").
			WithCause(err).
			WithContext("path", e.opts.SiteDir).
			Build()
	}

	pages := make([]Page, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		page, err := e.enrichPage(p, report)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (e *Enricher) enrichPage(file string, report *Report) (Page, error) {
	rel, err := filepath.Rel(e.opts.SiteDir, file)
	if err != nil {
		return Page{}, fmt.Errorf("relative path of %s: %w", file, err)
	}
	rel = filepath.ToSlash(rel)

	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, errors.FileSystemError("reading page failed").WithCause(err).WithContext("path", file).Build()
	}
	page, err := ExtractPage(rel, data, e.opts.Page)
	if err != nil {
		return Page{}, errors.RenderError("parsing page failed").WithCause(err).WithContext("path", file).Build()
	}
	report.Pages++

	if page.Enriched {
		report.AlreadyEnriched++
		e.recorder.IncPageResult(metrics.PageUnchanged)
		return page, nil
	}

	markup := string(data)
	tags, err := Injections(markup, page, e.opts.Tags)
	if err != nil {
		return page, errors.RenderError("building head injections failed").WithCause(err).WithContext("path", file).Build()
	}
	enriched, err := InjectHead(markup, tags)
	switch {
	case stderrors.Is(err, ErrNoHead):
		report.NoHead++
		e.recorder.IncPageResult(metrics.PageNoHead)
		slog.Debug("Page has no head to enrich", logfields.Path(rel))
		return page, nil
	case err != nil:
		return page, err
	case len(tags) == 0:
		report.Unchanged++
		e.recorder.IncPageResult(metrics.PageUnchanged)
		return page, nil
	}

	if err := os.WriteFile(file, []byte(enriched), 0o644); err != nil { // #nosec G306 -- published site content
		return page, errors.FileSystemError("writing page failed").WithCause(err).WithContext("path", file).Build()
	}
	report.Injected++
	e.recorder.IncPageResult(metrics.PageInjected)
	slog.Debug("Page enriched", logfields.Path(rel), logfields.Count(len(tags)))
	return page, nil
}

func (e *Enricher) writeFeed(pages []Page, report *Report) error {
	entries := FeedEntries(pages, e.opts.Feed.Limit)
	rss, err := BuildFeed(entries, e.opts.Feed)
	if err != nil {
		return errors.RenderError("building feed failed").WithCause(err).Build()
	}
	if err := os.MkdirAll(filepath.Dir(e.opts.FeedPath), 0o750); err != nil {
		return errors.FileSystemError("creating feed directory failed").WithCause(err).WithContext("path", e.opts.FeedPath).Build()
	}
	if err := os.WriteFile(e.opts.FeedPath, []byte(rss), 0o644); err != nil { // #nosec G306 -- published site content
		return errors.FileSystemError("writing feed failed").WithCause(err).WithContext("path", e.opts.FeedPath).Build()
	}
	report.FeedEntries = len(entries)
	e.recorder.SetFeedEntries(len(entries))
	slog.Info("Feed written", logfields.Path(e.opts.FeedPath), logfields.Count(len(entries)))
	return nil
}

func (e *Enricher) updateSitemap(pages []Page, report *Report) error {
	data, err := os.ReadFile(e.opts.SitemapPath)
	if stderrors.Is(err, fs.ErrNotExist) {
		slog.Info("No sitemap found, skipping lastmod update", logfields.Path(e.opts.SitemapPath))
		return nil
	}
	if err != nil {
		return errors.FileSystemError("reading sitemap failed").WithCause(err).WithContext("path", e.opts.SitemapPath).Build()
	}
	report.SitemapFound = true

	lastmod := make(map[string]time.Time, len(pages))
	for _, p := range pages {
		if t, ok := p.LastModified().Get(); ok {
			lastmod[p.URL] = t
		}
	}

	updated, n := UpdateSitemap(string(data), lastmod)
	report.SitemapUpdated = n
	if updated == string(data) {
		return nil
	}
	if err := os.WriteFile(e.opts.SitemapPath, []byte(updated), 0o644); err != nil { // #nosec G306 -- published site content
		return errors.FileSystemError("writing sitemap failed").WithCause(err).WithContext("path", e.opts.SitemapPath).Build()
	}
	slog.Info("Sitemap updated", logfields.Path(e.opts.SitemapPath), logfields.Count(n))
	return nil
}
