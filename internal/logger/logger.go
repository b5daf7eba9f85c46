// Package logger provides structured logging for the bptree service stack.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps zerolog with bptree-specific convenience methods.
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// NewLogger creates a new structured logger.
func NewLogger(cfg Config) *Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "bptree").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// GetZerolog returns the underlying zerolog logger.
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

// Info logs an info message.
func (l *Logger) Info(msg string) *zerolog.Event {
	return l.zlog.Info().Str("msg", msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) *zerolog.Event {
	return l.zlog.Debug().Str("msg", msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) *zerolog.Event {
	return l.zlog.Warn().Str("msg", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) *zerolog.Event {
	return l.zlog.Error().Str("msg", msg)
}

// WithFields returns a logger with additional fields attached.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zlog: ctx.Logger()}
}

// TreeLogger returns a logger scoped to a named tree instance.
func (l *Logger) TreeLogger(name string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "btree").
			Str("tree", name).
			Logger(),
	}
}

// LogMutation logs a Put/Remove with its resulting size and duration.
func (l *Logger) LogMutation(op string, key string, duration time.Duration, size int, err error) {
	event := l.zlog.Debug().
		Str("component", "btree").
		Str("op", op).
		Str("key", key).
		Dur("duration", duration).
		Int("size", size)

	if err != nil {
		event = l.zlog.Error().
			Str("component", "btree").
			Str("op", op).
			Str("key", key).
			Err(err)
	}
	event.Msg("tree mutation")
}

// LogStructural logs a split, merge, or borrow with the resulting height.
func (l *Logger) LogStructural(event string, height int) {
	l.zlog.Debug().
		Str("component", "btree").
		Str("event", event).
		Int("height", height).
		Msg("tree rebalanced")
}

// LogServerStart logs server startup.
func (l *Logger) LogServerStart(addr string, degree int) {
	l.zlog.Info().
		Str("event", "server_start").
		Str("addr", addr).
		Int("degree", degree).
		Msg("bptree server starting")
}

// LogServerReady logs when the server is ready.
func (l *Logger) LogServerReady(addr string) {
	l.zlog.Info().
		Str("event", "server_ready").
		Str("addr", addr).
		Msg("bptree server ready to accept connections")
}

// LogServerShutdown logs server shutdown.
func (l *Logger) LogServerShutdown() {
	l.zlog.Info().
		Str("event", "server_shutdown").
		Msg("bptree server shutting down")
}

// Global logger instance.
var globalLogger *Logger

// InitGlobalLogger initializes the global logger.
func InitGlobalLogger(cfg Config) {
	globalLogger = NewLogger(cfg)
	log.Logger = *globalLogger.GetZerolog()
}

// GetGlobalLogger returns the global logger instance, initializing a
// default one on first use.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		InitGlobalLogger(Config{Level: "info", Pretty: true})
	}
	return globalLogger
}
