package id3

import "log/slog"

// Logger receives debug output about data the parser had to skip or
// keep uninterpreted, and about file rewrites. It discards everything
// unless replaced with SetLogger.
var Logger = slog.New(slog.DiscardHandler)

// SetLogger replaces Logger. A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	Logger = l
}
