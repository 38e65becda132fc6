package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyPlugin      = "plugin"
	KeyPluginType  = "plugin_type"
	KeyStep        = "step"
	KeyPath        = "path"
	KeyOutput      = "output"
	KeyDomainCount = "domain_count"
	KeyDomain      = "domain"
	KeyBytes       = "bytes"
	KeyDurationMS  = "duration_ms"
	KeyEvent       = "event"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Plugin(name string) slog.Attr     { return slog.String(KeyPlugin, name) }
func PluginType(t string) slog.Attr    { return slog.String(KeyPluginType, t) }
func Step(i int) slog.Attr             { return slog.Int(KeyStep, i) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func DomainCount(n int) slog.Attr      { return slog.Int(KeyDomainCount, n) }
func Domain(d string) slog.Attr        { return slog.String(KeyDomain, d) }
func Bytes(n int) slog.Attr            { return slog.Int(KeyBytes, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Event(e string) slog.Attr         { return slog.String(KeyEvent, e) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
