package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/httpserver"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestServeAndShutdown(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	srv := httpserver.New(
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithStopHook(func(*slog.Logger) { stopped.Store(true) }),
	)
	ln := listen(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}))
	}()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, stopped.Load())
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestServeTwice(t *testing.T) {
	t.Parallel()

	srv := httpserver.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := listen(t)
	go func() { _ = srv.Serve(ctx, first, nil) }()
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + first.Addr().String())
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, srv.Serve(ctx, listen(t), nil), httpserver.ErrAlreadyRunning)
}

func TestRunStartError(t *testing.T) {
	t.Parallel()

	ln := listen(t)
	defer ln.Close()

	err := httpserver.New(httpserver.WithAddr(ln.Addr().String())).Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithStopHook(nil) })
	assert.NotPanics(t, func() { httpserver.NewFromConfig(httpserver.Config{}) })
}

func TestHealthHandlers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("down") }

	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(nil, time.Second, map[string]httpserver.Check{"redis": ok})(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	rec = httptest.NewRecorder()
	httpserver.ReadinessHandler(nil, time.Second, map[string]httpserver.Check{"redis": ok, "mail": fail})(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}
