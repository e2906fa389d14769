// Package logs builds the diagnostic logger. Failures in this system
// degrade to log lines rather than user-facing errors, so everything
// funnels through here.
package logs

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetDebug lowers the level for all handlers built by New.
func SetDebug() {
	level.Set(slog.LevelDebug)
}

// New fans log records out to a file and, when stderr is free (i.e. the
// TUI does not own the terminal), to stderr. With neither destination the
// logger discards everything. The returned closer is nil when there is no
// file to close.
func New(file string, stderr bool) (*slog.Logger, io.Closer, error) {
	var handlers []slog.Handler
	var closer io.Closer

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closer = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	if stderr {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
