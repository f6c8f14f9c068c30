package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// swapLogger installs an observer-backed logger for the duration of the test.
func swapLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, observed := observer.New(zapcore.InfoLevel)

	original := log
	log = zap.New(core)
	t.Cleanup(func() { log = original })

	return observed
}

func TestNew(t *testing.T) {
	t.Run("Production defaults to info", func(t *testing.T) {
		l, err := New(Options{Env: "production"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Development defaults to debug", func(t *testing.T) {
		l, err := New(Options{Env: "development"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Explicit level", func(t *testing.T) {
		l, err := New(Options{Env: "production", Level: "WARN"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Unknown level", func(t *testing.T) {
		l, err := New(Options{Level: "loud"})
		assert.Error(t, err)
		assert.Nil(t, l)
	})
}

func TestInit(t *testing.T) {
	original := log
	defer func() { log = original }()

	t.Run("Replaces the global logger", func(t *testing.T) {
		log = nil
		require.NoError(t, Init(Options{Env: "production"}))
		assert.NotNil(t, log)
	})

	t.Run("Keeps the previous logger on error", func(t *testing.T) {
		prev := zap.NewNop()
		log = prev
		assert.Error(t, Init(Options{Level: "loud"}))
		assert.Same(t, prev, log)
	})
}

func TestL(t *testing.T) {
	original := log
	defer func() { log = original }()

	t.Run("Builds from env", func(t *testing.T) {
		log = nil
		t.Setenv("APP_ENV", "test")
		t.Setenv("LOG_LEVEL", "error")

		assert.NotNil(t, L())
		assert.False(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Bad level falls back", func(t *testing.T) {
		log = nil
		t.Setenv("APP_ENV", "test")
		t.Setenv("LOG_LEVEL", "loud")

		assert.NotNil(t, L())
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestID", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFrom(ctx))
		assert.Equal(t, "req-1", RequestIDFrom(WithRequestID(ctx, "req-1")))
	})

	t.Run("Owner", func(t *testing.T) {
		assert.Equal(t, "", OwnerFrom(ctx))
		assert.Equal(t, "user:42", OwnerFrom(WithOwner(ctx, "user:42")))
	})
}

func TestFromCtx(t *testing.T) {
	observed := swapLogger(t)

	t.Run("WithFields", func(t *testing.T) {
		ctx := WithOwner(WithRequestID(context.Background(), "req-abc-123"), "user:7")

		FromCtx(ctx).Info("with fields")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, "user:7", fields["owner"])
	})

	t.Run("WithoutFields", func(t *testing.T) {
		FromCtx(context.Background()).Info("bare")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := swapLogger(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logs := observed.TakeAll()
	assert.Len(t, logs, 1)
	assert.Equal(t, "incoming request", logs[0].Message)
	assert.Equal(t, "/test", logs[0].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusTeapot), logs[0].ContextMap()["status"])
}
