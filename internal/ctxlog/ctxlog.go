// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

// LevelVar holds the level shared by the package loggers.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes pretty records to stderr, leaving stdout to command output.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger writes one JSON object per record to stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a context carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromEnv returns JSONLogger when the ARCLI_LOG_FORMAT variable is "json" and DefaultLogger otherwise.
func FromEnv() *slog.Logger {
	if jsonFormat() {
		return JSONLogger
	}

	return DefaultLogger
}

// NewForTUI returns a context whose logger writes uncoloured records into w.
// It is used while a spinner owns the terminal; the caller flushes w afterwards.
func NewForTUI(ctx context.Context, w io.Writer) context.Context {
	opts := &slog.HandlerOptions{Level: LevelVar}

	if jsonFormat() {
		return New(ctx, slog.New(slog.NewJSONHandler(w, opts)))
	}

	return New(ctx, slog.New(NewPrettyHandler(opts, WithDestinationWriter(w))))
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs at info level using the context logger.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs at debug level using the context logger.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs at warn level using the context logger.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs at error level using the context logger.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// LevelEnvName returns the name of the environment variable that sets the log level,
// derived from the executable name, e.g. ARCLI_LOG_LEVEL.
func LevelEnvName() string {
	return envPrefix() + "_LOG_LEVEL"
}

// FormatEnvName returns the name of the environment variable that selects the log format,
// e.g. ARCLI_LOG_FORMAT.
func FormatEnvName() string {
	return envPrefix() + "_LOG_FORMAT"
}

func envPrefix() string {
	exec, _ := os.Executable()
	exec = filepath.Base(exec)
	exec = strings.TrimSuffix(exec, ".exe")
	exec = strings.ReplaceAll(exec, "-", "_")

	return strings.ToUpper(exec)
}

func jsonFormat() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv(FormatEnvName())), "json")
}

func logLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnvName()))
}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a slog level.
// Anything else yields slog.LevelWarn.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
