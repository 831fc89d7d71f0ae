package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyDocument    = "document"
	KeySlug        = "slug"
	KeyCategory    = "category"
	KeySubcategory = "subcategory"
	KeyPath        = "path"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyCount       = "count"
	KeyReason      = "reason"
	KeyURL         = "url"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Document(rel string) slog.Attr    { return slog.String(KeyDocument, rel) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Category(c string) slog.Attr      { return slog.String(KeyCategory, c) }
func Subcategory(c string) slog.Attr   { return slog.String(KeySubcategory, c) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
