package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyURL        = "url"
	KeyRepo       = "repository"
	KeyRunID      = "run_id"
	KeyNodeKind   = "node_kind"
	KeyLanguage   = "language"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Repository(r string) slog.Attr   { return slog.String(KeyRepo, r) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func NodeKind(k string) slog.Attr     { return slog.String(KeyNodeKind, k) }
func Language(l string) slog.Attr     { return slog.String(KeyLanguage, l) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
