// Package build runs the essay conversion pipeline.
//
// A run has two passes separated by a barrier. The collection pass
// discovers every source document, extracts its metadata, resolves its
// history dates and converts it. Once every document is collected the
// category tree is built, which disambiguates titles and fills the slug
// table. The render pass then normalizes each converted document, resolves
// its cross-references against the complete slug table and writes it.
// Navigation and homepage are generated last from the same tree.
//
// Per-document failures are counted in the Report and never abort the run.
// The only fatal condition of the collection pass is a missing corpus.
package build
