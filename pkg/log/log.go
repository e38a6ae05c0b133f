// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelInfo

	debug   = "debug"
	warn    = "warn"
	info    = "info"
	errorLv = "error"

	formatText = "text"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context handler in place when loggers are derived with With.
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler in place when loggers are derived with WithGroup.
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		// copy so sibling contexts never share a backing array
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// Options tunes InitStructureLogConfig. Zero values fall back to the
// LOG_* environment variables.
type Options struct {
	// Output receives the log records; defaults to stderr
	Output io.Writer
	// Level overrides LOG_LEVEL when set
	Level string
}

// InitStructureLogConfig sets the structured log behavior
func InitStructureLogConfig(opts Options) {

	logOptions := &slog.HandlerOptions{}
	var h slog.Handler

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	logLevel := opts.Level
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	logOptions.Level = ParseLevel(logLevel)

	addSource := os.Getenv("LOG_ADD_SOURCE")
	logOptions.AddSource = addSource == "true"

	switch os.Getenv("LOG_FORMAT") {
	case formatText:
		h = slog.NewTextHandler(output, logOptions)
	default:
		h = slog.NewJSONHandler(output, logOptions)
	}

	log.SetFlags(log.Llongfile)
	log.SetOutput(output)
	logger := contextHandler{h}
	slog.SetDefault(slog.New(logger))

	slog.Debug("log config",
		"logLevel", logLevel,
		"LOG_ADD_SOURCE", logOptions.AddSource,
	)
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(level string) slog.Level {
	switch level {
	case debug:
		return slog.LevelDebug
	case warn:
		return slog.LevelWarn
	case info:
		return slog.LevelInfo
	case errorLv:
		return slog.LevelError
	default:
		return logLevelDefault
	}
}

// OpenFile opens (or creates) a log file in append mode, for front ends
// that own stdout.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
