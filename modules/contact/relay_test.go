package contact_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/boubliclub/formrelay/modules/contact"
	"github.com/boubliclub/formrelay/pkg/email"
	"github.com/boubliclub/formrelay/pkg/journal"
	"github.com/boubliclub/formrelay/pkg/logger"
)

func TestRelayDeliver(t *testing.T) {
	t.Parallel()

	clock := journal.WithClock(func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) })
	msg := email.Message{To: "club@example.com", From: "noreply@boubli.club", ReplyTo: "amina@example.com", Subject: "s"}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var ok, failed bytes.Buffer
		sender := &mockSender{}
		sender.On("Send", mock.Anything, msg).Return(nil).Once()

		relay := contact.NewRelay(sender, journal.NewWithWriters(&ok, &failed, clock), logger.Discard())
		assert.True(t, relay.Deliver(context.Background(), msg))

		sender.AssertExpectations(t)
		assert.Equal(t, "[2025-03-14 09:26:53] Email envoyé avec succès de: amina@example.com\n", ok.String())
		assert.Empty(t, failed.String())
	})

	t.Run("failure is not retried", func(t *testing.T) {
		t.Parallel()
		var ok, failed bytes.Buffer
		sender := &mockSender{}
		sender.On("Send", mock.Anything, msg).Return(errors.New("smtp: 451 try later"))

		relay := contact.NewRelay(sender, journal.NewWithWriters(&ok, &failed, clock), logger.Discard())
		assert.False(t, relay.Deliver(context.Background(), msg))

		sender.AssertNumberOfCalls(t, "Send", 1)
		assert.Empty(t, ok.String())
		assert.Equal(t, "[2025-03-14 09:26:53] Échec d'envoi d'email de: amina@example.com\n", failed.String())
	})

	t.Run("nil journal", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("Send", mock.Anything, msg).Return(nil)

		assert.True(t, contact.NewRelay(sender, nil, logger.Discard()).Deliver(context.Background(), msg))
	})
}
