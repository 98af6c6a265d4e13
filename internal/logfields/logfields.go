package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyURL        = "url"
	KeyFilename   = "filename"
	KeyHost       = "host"
	KeyStatus     = "status"
	KeyBytes      = "bytes"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Filename(n string) slog.Attr     { return slog.String(KeyFilename, n) }
func Host(h string) slog.Attr         { return slog.String(KeyHost, h) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
