// Package logger builds the zap loggers used by the CLI and HTTP server.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared by the server and CLI.
const (
	FieldSource      = "source"
	FieldContentHash = "content_hash"
	FieldRequestID   = "request_id"
	FieldExtraction  = "extraction_id"
	FieldMethod      = "method"
	FieldPath        = "path"
)

// maxSourceLen bounds client-supplied source names in log lines.
const maxSourceLen = 80

// New returns a logger writing console or JSON lines to stderr.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	return cfg.Build()
}

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes an ingested document. Empty values are skipped and
// long source names are shortened.
func DocumentFields(source, contentHash string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if s := TruncateForLog(source, maxSourceLen); s != "" {
		fields = append(fields, zap.String(FieldSource, s))
	}
	if h := strings.TrimSpace(contentHash); h != "" {
		if len(h) > 12 {
			h = h[:12]
		}
		fields = append(fields, zap.String(FieldContentHash, h))
	}
	return fields
}

// RequestFields describes an HTTP request.
func RequestFields(method, path, requestID string) []zap.Field {
	fields := []zap.Field{
		zap.String(FieldMethod, method),
		zap.String(FieldPath, path),
	}
	if requestID != "" {
		fields = append(fields, zap.String(FieldRequestID, requestID))
	}
	return fields
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when cut.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
