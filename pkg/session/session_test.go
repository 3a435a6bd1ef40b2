package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/cookie"
	"github.com/boubliclub/formrelay/pkg/session"
)

const secret = "0123456789abcdef0123456789abcdef"

func newCodec(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{secret})
	require.NoError(t, err)
	return m
}

func TestEnsureSession(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	m := session.New(codec)

	var seen string
	h := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.KeyFromContext(r.Context())
	}))

	t.Run("issues a session when none is present", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		require.NotEmpty(t, seen)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
	})

	t.Run("reuses the session carried by the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		first := seen
		c := rec.Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(c)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, first, seen)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("replaces a tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "garbage"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEmpty(t, seen)
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}

func TestManagerExpiry(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := session.New(codec,
		session.WithLifetime(time.Hour),
		session.WithClock(func() time.Time { return now }),
	)

	rec := httptest.NewRecorder()
	s, err := m.Ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	got, err := m.Get(req)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	now = now.Add(2 * time.Hour)
	_, err = m.Get(req)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestManagerGetErrors(t *testing.T) {
	t.Parallel()

	m := session.New(newCodec(t))

	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-token"})
	_, err = m.Get(req)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestHeaderTransport(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	m := session.NewFromConfig(session.Config{
		CookieName:  "sid",
		HeaderName:  "X-Session-Token",
		MaxLifetime: time.Hour,
	}, codec)

	rec := httptest.NewRecorder()
	s, err := m.Ensure(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)

	token := rec.Header().Get("X-Session-Token")
	require.NotEmpty(t, token)
	assert.NotEmpty(t, rec.Header().Get("X-Session-Token-Expires"))
	assert.Len(t, rec.Result().Cookies(), 1)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Session-Token", token)
	got, err := m.Get(req)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestHeaderTransportPrefix(t *testing.T) {
	t.Parallel()

	tr := session.NewHeaderTransport("Authorization", session.WithHeaderPrefix("Bearer "))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	token, err := tr.GetToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	rec := httptest.NewRecorder()
	require.NoError(t, tr.SetToken(rec, "xyz", 0))
	assert.Equal(t, "Bearer xyz", rec.Header().Get("Authorization"))

	require.NoError(t, tr.ClearToken(rec))
	assert.Empty(t, rec.Header().Get("Authorization"))
}

func TestMiddlewareWithoutSession(t *testing.T) {
	t.Parallel()

	m := session.New(newCodec(t))
	called := false
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := session.FromContext(r.Context())
		assert.False(t, ok)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
	assert.Empty(t, rec.Result().Cookies())
}
