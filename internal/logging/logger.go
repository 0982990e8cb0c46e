// Package logging builds the process logger and request-scoped entries.
package logging

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/content-analyzer/internal/requestid"
)

// ParseLevel maps a LOG_LEVEL style string to a logrus level.
// Unknown or empty values default to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New creates a logger writing to out. format is "json" or "text".
func New(level, format string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(ParseLevel(level))
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// WithRequestID attaches the request ID from ctx, if any.
func WithRequestID(ctx context.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	id := requestid.FromContext(ctx)
	if id == "" {
		return logger
	}
	return logger.WithField("request_id", id)
}

// Discard returns a logger that drops everything. Used as a nil fallback.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
