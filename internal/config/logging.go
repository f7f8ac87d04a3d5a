package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the text logger used by panelkit binaries.
// Output goes to stderr unless w is given, so stdout stays clean for output.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
