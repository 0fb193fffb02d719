// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger writing to w, JSON when format is "json" and text otherwise.
func New(w io.Writer, format string) *slog.Logger {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, nil)
	} else {
		h = slog.NewTextHandler(w, nil)
	}
	return slog.New(h)
}

// Setup installs a logger on stdout as the slog default.
func Setup(format string) *slog.Logger {
	l := New(os.Stdout, format)
	slog.SetDefault(l)
	return l
}
