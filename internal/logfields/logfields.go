package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPlug     = "plug"
	KeyPath     = "path"
	KeyArtifact = "artifact"
	KeyRunID    = "run_id"
	KeyRemote   = "remote"
	KeyURL      = "url"
	KeyPort     = "port"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Plug(name string) slog.Attr     { return slog.String(KeyPlug, name) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Artifact(name string) slog.Attr { return slog.String(KeyArtifact, name) }
func RunID(id string) slog.Attr      { return slog.String(KeyRunID, id) }
func Remote(name string) slog.Attr   { return slog.String(KeyRemote, name) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Port(p int) slog.Attr           { return slog.Int(KeyPort, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
