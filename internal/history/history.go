// Package history resolves publish and update dates for source documents
// from version-control history.
package history

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jamesxoliver/jamesxoliver.github.io/internal/foundation"
	"github.com/jamesxoliver/jamesxoliver.github.io/internal/logfields"
)

var (
	// ErrUnavailable indicates no history source could be opened.
	ErrUnavailable = errors.New("history source unavailable")

	// ErrNoHistory indicates the path has no recorded commits.
	ErrNoHistory = errors.New("no recorded history")
)

// FileHistory is what a Source knows about one path.
type FileHistory struct {
	FirstAdded   time.Time // earliest add, following renames
	LastModified time.Time // most recent commit touching the path
}

// Source answers history queries for corpus-relative, slash-separated paths.
type Source interface {
	FileHistory(ctx context.Context, path string) (FileHistory, error)
}

// NoHistory is the Source used when no repository is available.
type NoHistory struct{}

func (NoHistory) FileHistory(context.Context, string) (FileHistory, error) {
	return FileHistory{}, ErrUnavailable
}

// Dates is the resolved, possibly unknown, pair of calendar dates for a
// document. Reason records why both are unknown.
type Dates struct {
	Published foundation.Option[time.Time]
	Updated   foundation.Option[time.Time]
	Reason    error
}

// Resolver converts Source answers into Dates.
type Resolver struct {
	source Source
}

// NewResolver wraps a Source. A nil source behaves like NoHistory.
func NewResolver(source Source) *Resolver {
	if source == nil {
		source = NoHistory{}
	}
	return &Resolver{source: source}
}

// Resolve never fails: lookup errors become unknown dates carrying the
// cause, which is logged at debug level.
func (r *Resolver) Resolve(ctx context.Context, path string) Dates {
	h, err := r.source.FileHistory(ctx, path)
	if err != nil {
		slog.Debug("History lookup failed", logfields.Document(path), logfields.Error(err))
		return Dates{
			Published: foundation.None[time.Time](),
			Updated:   foundation.None[time.Time](),
			Reason:    err,
		}
	}

	published := foundation.FromZero(calendarDate(h.FirstAdded))
	updated := foundation.FromZero(calendarDate(h.LastModified)).Or(published)
	return Dates{Published: published, Updated: updated}
}

// calendarDate keeps the day as recorded in the commit's own zone.
func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
