package contact_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/handler"
	"github.com/boubliclub/formrelay/modules/contact"
	"github.com/boubliclub/formrelay/pkg/cookie"
	"github.com/boubliclub/formrelay/pkg/journal"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/ratelimiter"
	"github.com/boubliclub/formrelay/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	handler   http.Handler
	sender    *mockSender
	delivered *bytes.Buffer
	failed    *bytes.Buffer
	now       time.Time
}

func (f *fixture) clock() time.Time { return f.now }

// newFixture wires the service with honeypot and cooldown checks followed
// by extra.
func newFixture(t *testing.T, sendErr error, extra ...contact.Check) *fixture {
	t.Helper()

	f := &fixture{
		sender:    &mockSender{},
		delivered: &bytes.Buffer{},
		failed:    &bytes.Buffer{},
		now:       time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	f.sender.On("Send", mock.Anything, mock.Anything).Return(sendErr)

	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(f.clock), ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	cd, err := ratelimiter.NewCooldown(store, ratelimiter.CooldownConfig{Interval: 30 * time.Second, TTL: 24 * time.Hour},
		ratelimiter.WithCooldownClock(f.clock))
	require.NoError(t, err)

	tr := newTranslator(t)
	svc, err := contact.NewService(
		contact.Config{Language: "fr", Timezone: "UTC"},
		contact.NewGuard(append([]contact.Check{contact.Honeypot(), contact.Cooldown(cd, nil)}, extra...)...),
		newValidator(t),
		contact.NewComposer("club@example.com", ""),
		contact.NewRelay(f.sender, journal.NewWithWriters(f.delivered, f.failed, journal.WithClock(f.clock)), logger.Discard()),
		tr,
		contact.WithLogger(logger.Discard()),
		contact.WithClock(f.clock),
	)
	require.NoError(t, err)

	codec, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	f.handler = contact.Router(svc, contact.RouterOptions{Sessions: session.New(codec, session.WithClock(f.clock))})
	return f
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) handler.Result {
	t.Helper()
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	var got handler.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestContactSuccess(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	w := postForm(f.handler, formValues(validSubmission()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handler.Result{
		Success: true,
		Message: "Merci pour votre message ! Nous vous répondrons dans les plus brefs délais.",
	}, decodeResult(t, w))

	f.sender.AssertNumberOfCalls(t, "Send", 1)
	msg := f.sender.sent(t, 0)
	assert.Equal(t, "club@example.com", msg.To)
	assert.Equal(t, "[Boubli Club Contact] Inscription", msg.Subject)
	assert.Equal(t, "Formulaire Boubli Club <noreply@www.boubli.club>", msg.From)
	assert.Contains(t, msg.HTML, "<span class='label'>IP :</span> 203.0.113.7")
	assert.Contains(t, msg.HTML, "14/03/2025 à 09:26:53")

	assert.Equal(t, "[2025-03-14 09:26:53] Email envoyé avec succès de: amina@example.com\n", f.delivered.String())
	assert.Empty(t, f.failed.String())
	assert.NotEmpty(t, w.Result().Cookies(), "session cookie is issued")
}

func TestContactJSONBody(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	body := `{"name":"Jo","email":"jo@example.com","subject":"Hi","message":"Hello there!","website":""}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handler.Result{
		Success: true,
		Message: "Merci pour votre message ! Nous vous répondrons dans les plus brefs délais.",
	}, decodeResult(t, w))
	assert.Equal(t, "[2025-03-14 09:26:53] Email envoyé avec succès de: jo@example.com\n", f.delivered.String())
}

func TestContactRejections(t *testing.T) {
	t.Parallel()

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		w := httptest.NewRecorder()
		f.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "POST", w.Header().Get("Allow"))
		assert.Equal(t, handler.Result{Message: "Méthode non autorisée."}, decodeResult(t, w))
		f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	for _, website := range []string{"http://spam.example", " ", "\n"} {
		t.Run("honeypot "+strconv.Quote(website), func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, nil)

			sub := validSubmission()
			sub.Website = website
			w := postForm(f.handler, formValues(sub))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, handler.Result{Message: "Soumission invalide détectée."}, decodeResult(t, w))
			f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}

	t.Run("missing message", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		sub := validSubmission()
		sub.Message = ""
		w := postForm(f.handler, formValues(sub))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, handler.Result{Message: "Le message est requis."}, decodeResult(t, w))
		f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		assert.Empty(t, f.delivered.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, handler.Result{Message: "Requête invalide."}, decodeResult(t, w))
	})

	t.Run("delivery failure", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, errors.New("connection refused"))

		w := postForm(f.handler, formValues(validSubmission()))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, handler.Result{
			Message: "Une erreur est survenue lors de l'envoi. Veuillez réessayer plus tard ou nous contacter directement.",
		}, decodeResult(t, w))
		assert.NotContains(t, w.Body.String(), "connection refused")
		f.sender.AssertNumberOfCalls(t, "Send", 1)
		assert.Equal(t, "[2025-03-14 09:26:53] Échec d'envoi d'email de: amina@example.com\n", f.failed.String())
	})
}

func TestContactCooldown(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	first := postForm(f.handler, formValues(validSubmission()))
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	f.now = f.now.Add(10 * time.Second)
	w := postForm(f.handler, formValues(validSubmission()), cookies...)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "20", w.Header().Get("Retry-After"))
	assert.Equal(t, handler.Result{
		Message: "Veuillez attendre 30 secondes avant de renvoyer le formulaire.",
	}, decodeResult(t, w))

	other := postForm(f.handler, formValues(validSubmission()))
	assert.Equal(t, http.StatusOK, other.Code, "a new session has its own window")

	f.now = f.now.Add(20 * time.Second)
	w = postForm(f.handler, formValues(validSubmission()), cookies...)
	assert.Equal(t, http.StatusOK, w.Code)

	f.sender.AssertNumberOfCalls(t, "Send", 3)
	assert.Equal(t, 3, strings.Count(f.delivered.String(), "Email envoyé avec succès de: amina@example.com"))
}

func TestContactIPLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	f := newFixture(t, nil, contact.IPLimit(bucket))

	bot := validSubmission()
	bot.Website = "http://spam.example"
	for range 3 {
		w := postForm(f.handler, formValues(bot))
		require.Equal(t, http.StatusBadRequest, w.Code, "honeypot answers before the ip limit")
	}

	require.Equal(t, http.StatusOK, postForm(f.handler, formValues(validSubmission())).Code)

	w := postForm(f.handler, formValues(validSubmission()))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	res := decodeResult(t, w)
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Message, "Veuillez attendre "))
	f.sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactMultilineSubject(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	sub := validSubmission()
	sub.Subject = "Inscription\nBcc: x@y.com"
	w := postForm(f.handler, formValues(sub))

	require.Equal(t, http.StatusOK, w.Code)
	msg := f.sender.sent(t, 0)
	assert.Equal(t, "[Boubli Club Contact] Inscription Bcc: x@y.com", msg.Subject)
	assert.NoError(t, msg.Validate())
	assert.Empty(t, f.failed.String())
}

func TestNewServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := contact.NewService(contact.Config{Timezone: "UTC"}, nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)

	_, err = contact.NewService(contact.Config{Timezone: "Mars/Olympus"}, nil,
		newValidator(t), contact.NewComposer("", ""), contact.NewRelay(&mockSender{}, nil, nil), nil)
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)
}

func TestServiceMessageFallback(t *testing.T) {
	t.Parallel()

	svc, err := contact.NewService(contact.Config{Timezone: "UTC"}, nil,
		newValidator(t), contact.NewComposer("", ""), contact.NewRelay(&mockSender{}, nil, nil), nil)
	require.NoError(t, err)

	assert.Equal(t, "Veuillez attendre 30 secondes avant de renvoyer le formulaire.", svc.Message("rate_limited", "seconds", "30"))
	assert.Equal(t, "Méthode non autorisée.", svc.Message("method_not_allowed"))
}
