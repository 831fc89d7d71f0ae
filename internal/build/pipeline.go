package build

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/catalog"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/config"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/docs"
	derrors "github.com/jamesxoliver/jamesxoliver.github.io/internal/docs/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation/errors"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/history"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metadata"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/metrics"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/normalize"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/pandoc"
)

// Pipeline converts the source corpus into the output corpus.
type Pipeline struct {
	cfg      *config.Config
	runner   pandoc.CommandRunner
	history  history.Source
	recorder metrics.Recorder
	out      io.Writer
}

// NewPipeline creates a pipeline with the real converter and the history
// source selected by cfg.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		runner:   pandoc.ExecRunner{},
		recorder: metrics.NoopRecorder{},
		out:      os.Stdout,
	}
}

// WithRunner replaces the converter command runner (for testing).
func (p *Pipeline) WithRunner(r pandoc.CommandRunner) *Pipeline {
	p.runner = r
	return p
}

// WithHistorySource replaces the history source selected by configuration.
func (p *Pipeline) WithHistorySource(s history.Source) *Pipeline {
	p.history = s
	return p
}

// WithRecorder sets the metrics recorder.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	p.recorder = r
	return p
}

// WithOutput sets where progress lines are printed.
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	if w == nil {
		w = io.Discard
	}
	p.out = w
	return p
}

// collected is one document that survived the collection pass.
type collected struct {
	meta      metadata.DocumentMetadata
	converted string
}

type runState struct {
	report    *Report
	sources   []docs.SourceDocument
	resolver  *history.Resolver
	builder   *catalog.Builder
	collected []collected
	tree      *catalog.Tree
	outputs   map[string]struct{} // absolute paths written or confirmed this run
}

// Run executes both passes and writes navigation and homepage. The report
// is returned even when a stage fails.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	st := &runState{
		report:   newReport(),
		resolver: history.NewResolver(p.historySource()),
		builder:  catalog.NewBuilder(),
		outputs:  make(map[string]struct{}),
	}

	stages := []stageDef{
		{StageDiscover, p.discover},
		{StageCollect, p.collect},
		{StageTree, p.buildTree},
		{StageRender, p.render},
		{StageNavigation, p.writeNavigation},
		{StageHomepage, p.writeHomepage},
	}
	err := p.runStages(ctx, st, stages)
	st.report.finish()

	slog.Info("Conversion finished",
		slog.Int("converted", st.report.Converted),
		slog.Int("unchanged", st.report.Unchanged),
		slog.Int("failed", st.report.Failed()),
		logfields.Duration(st.report.Duration()))
	return st.report, err
}

func (p *Pipeline) historySource() history.Source {
	if p.history != nil {
		return p.history
	}
	if p.cfg.Source.History != config.HistoryGit {
		return history.NoHistory{}
	}
	src, err := history.OpenGit(p.cfg.Source.Dir)
	if err != nil {
		slog.Info("Version history unavailable; publish dates unknown", logfields.Error(err))
		return history.NoHistory{}
	}
	return src
}

func (p *Pipeline) discover(_ context.Context, st *runState) error {
	d := docs.NewDiscovery(p.cfg.Source.Dir, docs.Options{
		Extension:      p.cfg.Source.Extension,
		SkipDirs:       p.cfg.Source.SkipDirs,
		TemplateMarker: p.cfg.Source.TemplateMarker,
		RootCategory:   p.cfg.Source.RootCategory,
	})
	sources, err := d.Discover()
	if err != nil {
		if stderrors.Is(err, derrors.ErrCorpusNotFound) {
			return errors.WrapError(err, errors.CategoryNotFound, "source directory not found").
				WithContext("path", p.cfg.Source.Dir).
				Fatal().
				Build()
		}
		return errors.DocsError("source discovery failed").
			WithCause(err).
			WithContext("path", p.cfg.Source.Dir).
			Fatal().
			Build()
	}
	st.sources = sources
	st.report.Discovered = len(sources)
	return nil
}

// collect is pass 1. Nothing derived from another document is used here.
func (p *Pipeline) collect(ctx context.Context, st *runState) error {
	extractor := metadata.NewExtractor(p.cfg.Source.TitlePlaceholder, p.cfg.Source.SubtitlePlaceholder)
	converter := pandoc.NewConverter(pandoc.Options{
		Binary:        p.cfg.Converter.Binary,
		ShiftHeadings: p.cfg.Converter.ShiftHeadings,
		ExtraArgs:     p.cfg.Converter.ExtraArgs,
	})
	converter.Runner = p.runner

	for i := range st.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := &st.sources[i]
		fmt.Fprintf(p.out, "Converting: %s\n", src.RelativePath)

		if err := src.Load(); err != nil {
			p.fail(st, src.RelativePath, ReasonReadFailed, err)
			continue
		}

		extracted, err := extractor.Extract(src.Content)
		if err != nil {
			fmt.Fprintln(p.out, "  Skipped: no title")
			p.fail(st, src.RelativePath, ReasonNoTitle, err)
			continue
		}

		dates := st.resolver.Resolve(ctx, src.RelativePath)
		slug := metadata.FileSlug(src.Name, p.cfg.Source.Extension)
		meta := metadata.DocumentMetadata{
			SourcePath:   src.RelativePath,
			Title:        extracted.Title,
			Subtitle:     extracted.Subtitle,
			Published:    dates.Published,
			Updated:      dates.Updated,
			RelatedSlugs: extracted.RelatedSlugs,
			TopCategory:  src.TopCategory,
			SubCategory:  src.SubCategory,
			Slug:         slug,
			OutputPath:   metadata.OutputPath(p.cfg.Output.EssaysDir, src.TopCategory, src.SubCategory.UnwrapOr(""), slug),
		}

		converted, err := converter.Convert(ctx, src.Path)
		if err != nil {
			fmt.Fprintln(p.out, "  Failed: conversion error")
			p.fail(st, src.RelativePath, ReasonConversionFailed, err)
			continue
		}

		if err := st.builder.Add(meta); err != nil {
			p.fail(st, src.RelativePath, ReasonDuplicateOutput, err)
			continue
		}
		st.collected = append(st.collected, collected{meta: meta, converted: converted})
	}
	return nil
}

func (p *Pipeline) fail(st *runState, doc string, reason FailureReason, err error) {
	st.report.addFailure(doc, reason, err)
	p.recorder.IncDocumentResult(documentResult(reason))

	level := slog.LevelWarn
	if reason == ReasonNoTitle {
		level = slog.LevelInfo
	}
	slog.Log(context.Background(), level, "Document skipped",
		logfields.Document(doc), logfields.Reason(string(reason)), logfields.Error(err))
}

func documentResult(reason FailureReason) metrics.DocumentResult {
	switch reason {
	case ReasonNoTitle:
		return metrics.DocumentSkippedNoTitle
	case ReasonDuplicateOutput:
		return metrics.DocumentDuplicateOutput
	case ReasonWriteFailed:
		return metrics.DocumentWriteFailed
	default:
		return metrics.DocumentConversionFailed
	}
}

// buildTree is the barrier between the passes.
func (p *Pipeline) buildTree(_ context.Context, st *runState) error {
	st.tree = st.builder.Build()
	slog.Info("Category tree built",
		logfields.Count(st.builder.Len()),
		slog.Int("categories", len(st.tree.Categories())))
	return nil
}

// render is pass 2. A document that fails to render or write is dropped
// from the tree and the remaining documents are rendered again, so no
// navigation entry, homepage link or cross-reference points at it.
func (p *Pipeline) render(ctx context.Context, st *runState) error {
	n := normalize.New(p.cfg.Site.Author, p.cfg.Output.WordsPerMinute)
	changed := make(map[string]bool, len(st.collected))

	for live := st.collected; ; {
		kept := make([]collected, 0, len(live))
		for _, c := range live {
			if err := ctx.Err(); err != nil {
				return err
			}
			written, err := p.renderDocument(n, st.tree, c)
			if err != nil {
				p.fail(st, c.meta.SourcePath, ReasonWriteFailed, err)
				continue
			}
			changed[c.meta.OutputPath] = changed[c.meta.OutputPath] || written
			kept = append(kept, c)
		}

		dropped := len(live) - len(kept)
		st.collected = kept
		if dropped == 0 {
			break
		}
		tree, err := treeOf(kept)
		if err != nil {
			return err
		}
		st.tree = tree
		live = kept
		slog.Info("Re-rendering without failed documents", logfields.Count(dropped))
	}

	for _, c := range st.collected {
		st.outputs[p.outputFile(c.meta)] = struct{}{}
		st.report.Converted++
		if !changed[c.meta.OutputPath] {
			st.report.Unchanged++
		}
		p.recorder.IncDocumentResult(metrics.DocumentConverted)
		slog.Debug("Document written",
			logfields.Document(c.meta.SourcePath),
			logfields.Path(c.meta.OutputPath),
			slog.Bool("changed", changed[c.meta.OutputPath]))
	}

	if !p.cfg.Output.Clean {
		return nil
	}
	removed, err := pruneStale(p.cfg.EssaysRoot(), st.outputs)
	st.report.Removed = removed
	if err != nil {
		return errors.FileSystemError("pruning stale essays failed").
			WithCause(err).
			WithContext("path", p.cfg.EssaysRoot()).
			Build()
	}
	return nil
}

func (p *Pipeline) renderDocument(n *normalize.Normalizer, tree *catalog.Tree, c collected) (bool, error) {
	unit := n.Normalize(c.converted, c.meta, p.resolveRelated(tree, c.meta))
	content, err := n.Render(unit)
	if err != nil {
		return false, err
	}
	return writeIfChanged(p.outputFile(c.meta), content)
}

func (p *Pipeline) outputFile(meta metadata.DocumentMetadata) string {
	return filepath.Join(p.cfg.Output.DocsDir, filepath.FromSlash(meta.OutputPath))
}

// treeOf rebuilds the tree from the documents still being published.
func treeOf(kept []collected) (*catalog.Tree, error) {
	b := catalog.NewBuilder()
	for _, c := range kept {
		if err := b.Add(c.meta); err != nil {
			return nil, errors.InternalError("rebuilding category tree failed").WithCause(err).Build()
		}
	}
	return b.Build(), nil
}

// resolveRelated maps declared slugs onto documents in the tree. Unknown
// slugs and self references are dropped.
func (p *Pipeline) resolveRelated(tree *catalog.Tree, meta metadata.DocumentMetadata) []normalize.RelatedLink {
	var links []normalize.RelatedLink
	for _, slug := range meta.RelatedSlugs {
		target, ok := tree.Resolve(slug)
		if !ok {
			slog.Debug("Unresolved cross-reference", logfields.Document(meta.SourcePath), logfields.Slug(slug))
			continue
		}
		if target.Meta.OutputPath == meta.OutputPath {
			continue
		}
		links = append(links, normalize.RelatedLink{Title: target.DisplayTitle, Target: target.Meta.OutputPath})
	}
	return links
}

func (p *Pipeline) writeNavigation(_ context.Context, st *runState) error {
	path := p.cfg.NavPath()
	if err := catalog.WriteNav(path, st.tree.Nav()); err != nil {
		return errors.FileSystemError("writing navigation fragment failed").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	slog.Info("Navigation fragment written", logfields.Path(path))
	return nil
}

func (p *Pipeline) writeHomepage(_ context.Context, st *runState) error {
	path := p.cfg.HomepagePath()
	page := st.tree.Homepage(catalog.HomepageOptions{
		Heading:     p.cfg.Site.Name,
		Description: p.cfg.Site.Description,
		RecentCount: p.cfg.Output.RecentCount,
	})
	if _, err := writeIfChanged(path, []byte(page)); err != nil {
		return errors.FileSystemError("writing homepage failed").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	slog.Info("Homepage written", logfields.Path(path))
	return nil
}
