/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger, picks the output format (console or JSON) from
the environment, and exposes key/value helpers for the Info, Warn, Error and Fatal levels.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger initializes the global zerolog instance.
// Development uses a colored ConsoleWriter at Debug level; otherwise JSON at Info level.
// A non-empty level (e.g. "warn") overrides the environment default when it parses.
func InitGlobalLogger(isDevelopment bool, level string) {
	var out io.Writer = os.Stdout
	lvl := zerolog.InfoLevel

	if isDevelopment {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		lvl = zerolog.DebugLevel
	}

	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// checkFields drops an odd-length key/value list so zerolog does not panic on it.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("logx %s call received odd number of fields: %v. Fields ignored.", level, fields)
		return nil
	}
	return fields
}

// Debug records a message at the Debug level with optional key/value fields.
func Debug(msg string, fields ...any) {
	Logger().Debug().
		Fields(checkFields("Debug", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Info records a message at the Info level with optional key/value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(checkFields("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn records a message at the Warn level with optional key/value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(checkFields("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error records err and a message at the Error level.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(checkFields("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal records err at the Fatal level and then exits the process with status 1.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(checkFields("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
