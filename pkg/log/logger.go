package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/rs/zerolog"
)

// SetupLogger installs the process-wide slog logger writing JSON lines to w.
func SetupLogger(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
	return nil
}

// ToLogLevel parses a level name as accepted by the --log-level flag.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.NewValidationError("log-level", "must be one of debug, info, warn, error", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// GetLogger returns a Logger backed by the current slog default.
func GetLogger() Logger {
	return &slogLogger{l: slog.Default()}
}

// GetLoggerWithName returns a Logger tagged with ComponentKey=name.
func GetLoggerWithName(name string) Logger {
	return &slogLogger{l: slog.Default().With(ComponentKey, name)}
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, errorFirst(fields)...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, errorFirst(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, errorFirst(fields)...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, errorFirst(fields)...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// errorFirst turns a leading bare error into an ErrAttr so the handler can
// extract its stack trace.
func errorFirst(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields))
		out = append(out, ErrAttr(err))
		return append(out, fields[1:]...)
	}
	return fields
}

var sinkMu sync.Mutex

// InstallWarningSink routes warnings raised with errors.Warn to a zerolog
// logger writing to w. Warnings that implement zerolog.LogObjectMarshaler are
// embedded as structured fields.
func InstallWarningSink(w io.Writer) zerolog.Logger {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	zl := zerolog.New(w).With().Timestamp().Str(ComponentKey, "warnings").Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(fmt.Sprint(warning))
	})
	return zl
}
