package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once sync.Once
	base *slog.Logger
)

// Init configures the process-wide logger exactly once: JSON to stdout,
// mirrored into a size-rotated file. Call it early in main.
func Init(service, filePath string) *slog.Logger {
	once.Do(func() {
		var w io.Writer = os.Stdout
		if filePath != "" {
			rot := &lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    50, // MB
				MaxBackups: 3,
				MaxAge:     7, // days
			}
			w = io.MultiWriter(os.Stdout, rot)
		}

		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
		base = slog.New(h).With("service", service)
		slog.SetDefault(base)
	})
	return base
}

// Component returns a child logger tagged with a component name. Safe to
// call before Init; it falls back to the default slog logger.
func Component(name string) *slog.Logger {
	if base == nil {
		return slog.Default().With("component", name)
	}
	return base.With("component", name)
}
