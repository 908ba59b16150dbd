package gridmem

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with gridmem-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithShape adds the grid shape fields to the logger.
func (l *Logger) WithShape(s Shape) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", s.Rows, "cols", s.Cols, "elem_size", s.ElemSize),
	}
}

// WithBytes adds a byte-count field to the logger.
func (l *Logger) WithBytes(n uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("bytes", n),
	}
}

// LogAlloc logs an allocation.
func (l *Logger) LogAlloc(s Shape, bytes uint64, err error) {
	if err != nil {
		l.Error("alloc failed",
			"rows", s.Rows,
			"cols", s.Cols,
			"elem_size", s.ElemSize,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.Debug("alloc completed",
			"rows", s.Rows,
			"cols", s.Cols,
			"elem_size", s.ElemSize,
			"bytes", bytes,
		)
	}
}

// LogResize logs a resize operation.
func (l *Logger) LogResize(oldRows, newRows int, bytes uint64, err error) {
	if err != nil {
		l.Error("resize failed",
			"old_rows", oldRows,
			"new_rows", newRows,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.Debug("resize completed",
			"old_rows", oldRows,
			"new_rows", newRows,
			"bytes", bytes,
		)
	}
}

// LogCopy logs a bulk copy between grids.
func (l *Logger) LogCopy(dst, src Shape, err error) {
	if err != nil {
		l.Warn("copy with mismatched shapes",
			"dst", dst.String(),
			"src", src.String(),
			"error", err,
		)
	} else {
		l.Debug("copy completed",
			"dst", dst.String(),
			"src", src.String(),
		)
	}
}

// LogFree logs a release.
func (l *Logger) LogFree(s Shape, bytes uint64) {
	l.Debug("free completed",
		"rows", s.Rows,
		"cols", s.Cols,
		"elem_size", s.ElemSize,
		"bytes", bytes,
	)
}
