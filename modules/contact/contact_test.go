package contact_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/locales"
	"github.com/boubliclub/formrelay/modules/contact"
	"github.com/boubliclub/formrelay/pkg/email"
	"github.com/boubliclub/formrelay/pkg/i18n"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/mxcheck"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockSender) sent(t *testing.T, i int) email.Message {
	t.Helper()
	require.Greater(t, len(m.Calls), i)
	msg, ok := m.Calls[i].Arguments.Get(1).(email.Message)
	require.True(t, ok)
	return msg
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := locales.NewTranslator(context.Background(), logger.Discard())
	require.NoError(t, err)
	return tr
}

func newValidator(t *testing.T) *contact.Validator {
	t.Helper()
	mx := mxcheck.Static{Domains: map[string]bool{"example.com": true, "boubli.club": true}}
	return contact.NewValidator(mx, newTranslator(t), "fr", logger.Discard())
}

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Amina Diallo",
		Email:   "amina@example.com",
		Subject: "Inscription",
		Message: "Bonjour, je voudrais inscrire mon fils au club.",
	}
}

func formValues(s contact.Submission) url.Values {
	return url.Values{
		"name":    {s.Name},
		"email":   {s.Email},
		"subject": {s.Subject},
		"message": {s.Message},
		"website": {s.Website},
	}
}

func postForm(h http.Handler, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Host = "www.boubli.club:8080"
	req.RemoteAddr = "203.0.113.7:51234"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
