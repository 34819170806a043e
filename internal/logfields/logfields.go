// Package logfields holds canonical log field name constants so attr
// names do not drift across packages.
package logfields

import "log/slog"

const (
	KeyBuildID    = "build_id"
	KeyTechnoteID = "technote_id"
	KeyStage      = "stage"
	KeyField      = "field"
	KeyPath       = "path"
	KeyWarnings   = "warning_count"
	KeyViolations = "violation_count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Granular helpers returning slog.Attr so callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func TechnoteID(id string) slog.Attr  { return slog.String(KeyTechnoteID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Field(name string) slog.Attr     { return slog.String(KeyField, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Warnings(n int) slog.Attr        { return slog.Int(KeyWarnings, n) }
func Violations(n int) slog.Attr      { return slog.Int(KeyViolations, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
