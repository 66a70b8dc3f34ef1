package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		json, debug bool
		level       zapcore.Level
	}{
		{false, false, zapcore.InfoLevel},
		{true, false, zapcore.InfoLevel},
		{false, true, zapcore.DebugLevel},
	} {
		l, err := New(tt.json, tt.debug)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.level))
		assert.False(t, l.Core().Enabled(tt.level-1))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	fallback.Info("another log")

	assert.Same(t, l, WithFields(l))
}

func TestDocumentFields(t *testing.T) {
	fields := DocumentFields("  resume.pdf ", "0123456789abcdef0123")
	require.Len(t, fields, 2)
	assert.Equal(t, FieldSource, fields[0].Key)
	assert.Equal(t, "resume.pdf", fields[0].String)
	assert.Equal(t, "0123456789ab", fields[1].String)

	assert.Empty(t, DocumentFields("", " "))

	long := DocumentFields(strings.Repeat("a", 500)+".pdf", "")
	require.Len(t, long, 1)
	assert.Equal(t, strings.Repeat("a", maxSourceLen)+"...", long[0].String)
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "hello", TruncateForLog("  hello ", 10))
	assert.Equal(t, "héll...", TruncateForLog("héllo world", 4))
	assert.Equal(t, "", TruncateForLog("hello", 0))
}

func TestRequestFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("request", RequestFields("POST", "/extract", "req-1")...)

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, "POST", ctx[FieldMethod])
	assert.Equal(t, "/extract", ctx[FieldPath])
	assert.Equal(t, "req-1", ctx[FieldRequestID])

	assert.Len(t, RequestFields("GET", "/health", ""), 2)
}
