// Package log provides a leveled, structured logger for the whole
// application. It is a thin wrapper around zerolog with a package-level
// logger, so callers just do log.Infow("msg", "key", value) anywhere.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

var (
	logger zerolog.Logger
	level  string
)

func init() {
	// Usable defaults until Init is called.
	Init(LogLevelInfo, "stderr", nil)
}

// Init initializes the package-level logger with the given level and output.
// Output may be "stdout", "stderr" or a file path. An optional errorOutput
// writer receives a duplicate of all error-level entries (useful for tests).
func Init(logLevel, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = f
	}
	if errorOutput != nil {
		out = io.MultiWriter(out, levelWriter{errorOutput})
	}
	zl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		zl = zerolog.InfoLevel
	}
	level = logLevel
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(zl).With().Timestamp().Logger()
}

// levelWriter forwards only error-level entries to the wrapped writer.
type levelWriter struct{ w io.Writer }

func (lw levelWriter) Write(p []byte) (int, error) { return len(p), nil }

func (lw levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l >= zerolog.ErrorLevel {
		return lw.w.Write(p)
	}
	return len(p), nil
}

// Level returns the level the logger was initialized with.
func Level() string { return level }

func Debug(args ...any) { logger.Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...any)  { logger.Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...any)  { logger.Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...any) { logger.Error().Msg(fmt.Sprint(args...)) }

func Debugf(format string, args ...any) { logger.Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { logger.Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { logger.Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { logger.Error().Msgf(format, args...) }

func Fatalf(format string, args ...any) {
	logger.Fatal().Msgf(format, args...)
}

// Debugw logs a message with alternating key-value pairs.
func Debugw(msg string, keysAndValues ...any) {
	logw(logger.Debug(), msg, keysAndValues)
}

// Infow logs a message with alternating key-value pairs.
func Infow(msg string, keysAndValues ...any) {
	logw(logger.Info(), msg, keysAndValues)
}

// Warnw logs a message with alternating key-value pairs.
func Warnw(msg string, keysAndValues ...any) {
	logw(logger.Warn(), msg, keysAndValues)
}

// Errorw logs an error followed by a message.
func Errorw(err error, msg string) {
	logger.Error().Err(err).Msg(msg)
}

func logw(ev *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	ev.Msg(msg)
}
