package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyControl  = "control"
	KeyHandle   = "handle"
	KeySlot     = "slot"
	KeyRow      = "row"
	KeyChannel  = "channel"
	KeyMix      = "mix"
	KeyValue    = "value"
	KeyStage    = "stage"
	KeyRunID    = "run_id"
	KeyCommand  = "command"
	KeyCard     = "card"
	KeyPath     = "path"
	KeyCount    = "count"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Control(name string) slog.Attr   { return slog.String(KeyControl, name) }
func Handle(h int) slog.Attr          { return slog.Int(KeyHandle, h) }
func Slot(s string) slog.Attr         { return slog.String(KeySlot, s) }
func Row(r string) slog.Attr          { return slog.String(KeyRow, r) }
func Channel(c string) slog.Attr      { return slog.String(KeyChannel, c) }
func Mix(label string) slog.Attr      { return slog.String(KeyMix, label) }
func Value(v string) slog.Attr        { return slog.String(KeyValue, v) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Card(c string) slog.Attr         { return slog.String(KeyCard, c) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
