package dispatcher_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boubliclub/formrelay/pkg/dispatcher"
	"github.com/boubliclub/formrelay/pkg/i18n"
	"github.com/boubliclub/formrelay/pkg/webhook"
)

func okTransport(calls *atomic.Int32) dispatcher.Transport {
	return dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		calls.Add(1)
		return nil
	})
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	rec := &dispatcher.Recorder{}
	form := dispatcher.NewForm("contact", okTransport(&calls), rec)

	outcome, err := form.Submit(context.Background(), dispatcher.Payload{"name": "Jane"})
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, dispatcher.DefaultMessages.Success, outcome.Message)
	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, form.Busy())

	assert.Equal(t, []string{"busy", "ready", "overlay", "reset"}, rec.Kinds())
	events := rec.Events()
	assert.Equal(t, "Sending... ⏳", events[0].Label)
	assert.Equal(t, "Send ✉️", events[1].Label)
	assert.Equal(t, 5*time.Second, events[2].Duration)
}

func TestSubmitTransportFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	rec := &dispatcher.Recorder{}
	form := dispatcher.NewForm("contact", dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		return boom
	}), rec, dispatcher.WithOverlayDuration(time.Second))

	outcome, err := form.Submit(context.Background(), dispatcher.Payload{})
	assert.ErrorIs(t, err, dispatcher.ErrSendFailed)
	assert.ErrorIs(t, err, boom)
	assert.False(t, outcome.Success)
	assert.Equal(t, dispatcher.DefaultMessages.Failure, outcome.Message)

	assert.Equal(t, []string{"busy", "ready", "overlay"}, rec.Kinds())
	assert.Equal(t, time.Second, rec.Events()[2].Duration)
	assert.False(t, form.Busy())
}

func TestSubmitRemoteMessage(t *testing.T) {
	t.Parallel()

	rec := &dispatcher.Recorder{}
	form := dispatcher.NewForm("contact", dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		return &dispatcher.RemoteError{Message: "Le message est requis."}
	}), rec)

	outcome, err := form.Submit(context.Background(), dispatcher.Payload{})
	assert.ErrorIs(t, err, dispatcher.ErrSendFailed)
	assert.Equal(t, "Le message est requis.", outcome.Message)
}

func TestSubmitPrecheckRefusal(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	rec := &dispatcher.Recorder{}
	form := dispatcher.NewForm("recruitment", okTransport(&calls), rec,
		dispatcher.WithPrecheck(func(p dispatcher.Payload) error {
			if p["interests"] == nil {
				return &dispatcher.PrecheckError{Message: "Veuillez sélectionner au moins un centre d'intérêt."}
			}
			return nil
		}),
	)

	outcome, err := form.Submit(context.Background(), dispatcher.Payload{})
	assert.ErrorIs(t, err, dispatcher.ErrPrecheckFailed)
	assert.False(t, outcome.Success)
	assert.Equal(t, "Veuillez sélectionner au moins un centre d'intérêt.", outcome.Message)
	assert.Zero(t, calls.Load())
	assert.Equal(t, []string{"overlay"}, rec.Kinds())
	assert.False(t, form.Busy())

	_, err = form.Submit(context.Background(), dispatcher.Payload{"interests": []string{"sport"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestSubmitWhileBusy(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	form := dispatcher.NewForm("contact", dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}), &dispatcher.Recorder{})

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background(), dispatcher.Payload{})
		done <- err
	}()

	<-started
	assert.True(t, form.Busy())
	_, err := form.Submit(context.Background(), dispatcher.Payload{})
	assert.ErrorIs(t, err, dispatcher.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, form.Busy())
}

func TestFormsAreIndependent(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	slow := dispatcher.NewForm("contact", dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		close(started)
		<-release
		return nil
	}), &dispatcher.Recorder{})

	var calls atomic.Int32
	other := dispatcher.NewForm("recruitment", okTransport(&calls), &dispatcher.Recorder{})

	go func() { _, _ = slow.Submit(context.Background(), dispatcher.Payload{}) }()
	<-started

	_, err := other.Submit(context.Background(), dispatcher.Payload{})
	assert.NoError(t, err)
	close(release)
}

func TestRelayTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("message") == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"success":false,"message":"Le message est requis."}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"Merci"}`))
	}))
	defer srv.Close()

	tr := dispatcher.NewRelayTransport(srv.Client(), srv.URL)

	require.NoError(t, tr.Send(context.Background(), dispatcher.Payload{"message": "Bonjour à tous"}))

	err := tr.Send(context.Background(), dispatcher.Payload{"name": "Jane"})
	var re *dispatcher.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Le message est requis.", re.Message)
}

func TestRelayTransportUnreadableAnswer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := dispatcher.NewRelayTransport(nil, srv.URL).Send(context.Background(), dispatcher.Payload{})
	assert.Error(t, err)
	var re *dispatcher.RemoteError
	assert.False(t, errors.As(err, &re))
}

func TestEmailAPITransport(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	tr, err := dispatcher.NewEmailAPITransportFromConfig(dispatcher.Config{
		EmailAPIURL:        srv.URL,
		EmailAPIServiceID:  "service_x",
		EmailAPITemplateID: "template_y",
		EmailAPIPublicKey:  "pk_z",
	}, webhook.NewSenderWithClient(srv.Client()))
	require.NoError(t, err)

	require.NoError(t, tr.Send(context.Background(), dispatcher.Payload{"from_name": "Jane"}))
	assert.Equal(t, "service_x", body["service_id"])
	assert.Equal(t, "template_y", body["template_id"])
	assert.Equal(t, "pk_z", body["user_id"])
	assert.Equal(t, map[string]any{"from_name": "Jane"}, body["template_params"])

	_, err = dispatcher.NewEmailAPITransport(nil, srv.URL, "", "t", "k")
	assert.ErrorIs(t, err, dispatcher.ErrInvalidConfig)
}

func TestEncodeForm(t *testing.T) {
	t.Parallel()

	v := dispatcher.EncodeForm(dispatcher.Payload{
		"name":      "Jane",
		"interests": []string{"sport", "art"},
		"age":       12,
		"skip":      nil,
	})
	assert.Equal(t, "Jane", v.Get("name"))
	assert.Equal(t, []string{"sport", "art"}, v["interests"])
	assert.Equal(t, "12", v.Get("age"))
	assert.NotContains(t, v, "skip")
}

func TestTerminalPresenter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	form := dispatcher.NewForm("contact", dispatcher.TransportFunc(func(context.Context, dispatcher.Payload) error {
		return nil
	}), dispatcher.NewTerminalPresenter(&buf))

	_, err := form.Submit(context.Background(), dispatcher.Payload{})
	require.NoError(t, err)
	assert.Equal(t, "[Sending... ⏳]\n[Send ✉️]\n✔ "+dispatcher.DefaultMessages.Success+"\n", buf.String())
}

func TestLabelsAndMessagesFromCatalog(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Translations: map[string]map[string]any{
		"en": {"dispatcher": map[string]any{"label": map[string]any{"idle": "Go", "busy": "Going"}}},
		"fr": {"recruitment": map[string]any{"success": "Bravo"}},
	}})
	require.NoError(t, err)

	assert.Equal(t, dispatcher.Labels{Idle: "Go", Busy: "Going"}, dispatcher.LabelsFrom(tr, "en"))
	m := dispatcher.MessagesFrom(tr, "fr", "recruitment")
	assert.Equal(t, "Bravo", m.Success)
	assert.Equal(t, dispatcher.DefaultMessages.Failure, m.Failure)
}
