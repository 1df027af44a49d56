package logger_test

import (
	"context"
	"testing"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
)

func newTestLogger(t *testing.T, format string) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		Format:      format,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	return l
}

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l := newTestLogger(t, logger.FormatJSON)
	ctx := logger.WithContext(context.Background(), l)

	if got := logger.FromContext(ctx); got != l {
		t.Errorf("FromContext returned %v, want stored logger", got)
	}
}

func TestFromContext_EmptyContextUsesSharedFallback(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	if a == nil || b == nil {
		t.Fatal("expected non-nil fallback logger")
	}
	if a != b {
		t.Error("expected the same fallback instance on every call")
	}

	a.Warn("fallback usable", logger.String("entry_id", "x"))
}

func TestFromContext_RequestScopedFields(t *testing.T) {
	t.Parallel()

	base := newTestLogger(t, logger.FormatJSON)
	scoped := base.With(logger.String("request_id", "req-1"), logger.Int("window_days", 30))

	ctx := logger.WithContext(context.Background(), base)
	ctx = logger.WithContext(ctx, scoped)

	got := logger.FromContext(ctx)
	if got != scoped {
		t.Error("expected the most recently stored logger")
	}
	if got == base {
		t.Error("With should return a distinct logger")
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	l := newTestLogger(t, logger.FormatConsole)
	l.Warn("console encoder", logger.Bool("cli", true))
	_ = l.Sync()
}

func TestNoOpLogger(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	if nop.With(logger.String("k", "v")) != nop {
		t.Error("NoOpLogger.With should return itself")
	}
	nop.Fatal("must not exit")
	if err := nop.Sync(); err != nil {
		t.Errorf("Sync() = %v, want nil", err)
	}
}
