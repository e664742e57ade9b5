// Package logging defines the structured-logging interface used across the
// tutor server. Implementations wrap slog or zap.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "usage checked", "user_id", id, "allowed", ok)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for the log_format setting.
const (
	FormatJSON   = "json"
	FormatZap    = "zap"
	FormatZapDev = "zap-dev"
)

// New builds the Logger selected by format. An empty format means JSON via slog.
func New(format string) (Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil))), nil
	case FormatZap:
		return NewZapLogger(false)
	case FormatZapDev:
		return NewZapLogger(true)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
