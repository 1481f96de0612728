package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewHandler returns a slog handler writing to w in the given format.
func NewHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (expected %s or %s)", format, FormatText, FormatJSON)
	}
}

// Setup installs the default logger. When debug is false every record is
// dropped; otherwise debug records go to a rotating file at path.
// The returned closer must be closed on exit.
func Setup(debug bool, path, format string) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return io.NopCloser(nil), nil
	}

	file, err := NewRotatingFile(path)
	if err != nil {
		return nil, err
	}

	handler, err := NewHandler(file, format, slog.LevelDebug)
	if err != nil {
		file.Close()
		return nil, err
	}

	slog.SetDefault(slog.New(handler))
	return file, nil
}
