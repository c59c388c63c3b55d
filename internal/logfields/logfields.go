package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRoute      = "route"
	KeyPrefix     = "prefix"
	KeyMode       = "mode"
	KeyDepth      = "depth"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyPages      = "pages"
	KeyItems      = "items"
	KeyLocale     = "locale"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyRemoteAddr = "remote_addr"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Prefix(p string) slog.Attr       { return slog.String(KeyPrefix, p) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Items(n int) slog.Attr           { return slog.Int(KeyItems, n) }
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
