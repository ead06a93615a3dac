package logger

import (
	"context"
	"testing"

	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogBuilder_ExtractsRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core), zapcore.DebugLevel)
	t.Cleanup(func() { SetLogger(zap.NewNop(), zapcore.DebugLevel) })

	ctx := ctxutil.WithValue(context.Background(), ctxutil.RequestIDKey, "req-1")
	ctx = ctxutil.WithUserID(ctx, 7)
	ctx = ctxutil.WithOperation(ctx, "service", "List")

	InfoWithContext(ctx, "listed").Int("count", 3).Log()

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "listed", entries[0].Message)
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, uint64(7), fields["user_id"])
		assert.Equal(t, "service", fields["module"])
		assert.Equal(t, "List", fields["function"])
		assert.Equal(t, int64(3), fields["count"])
	}
}

func TestContextLogBuilder_SkipsDisabledLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core), zapcore.WarnLevel)
	t.Cleanup(func() { SetLogger(zap.NewNop(), zapcore.DebugLevel) })

	DebugWithContext(context.Background(), "hidden").String("k", "v").Log()
	WarnWithContext(context.Background(), "shown").Log()

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "shown", entries[0].Message)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}
