package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Sender delivers a single message. Implementations make exactly one
// attempt and never retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Header is a single message header. Order is preserved on the wire.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is an HTML email.
type Message struct {
	To      string   `json:"to"`
	From    string   `json:"from"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"-"`
	Headers []Header `json:"headers,omitempty"`
	Tag     string   `json:"tag,omitempty"`
}

// Header returns the value of the first header named name, case-insensitively.
func (m Message) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Validate checks the message can be handed to a transport. Addresses
// must parse and no header may span lines.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: invalid recipient: %v", ErrInvalidMessage, err)
	}
	if m.From == "" {
		return fmt.Errorf("%w: sender is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.From); err != nil {
		return fmt.Errorf("%w: invalid sender: %v", ErrInvalidMessage, err)
	}
	if m.ReplyTo != "" {
		if _, err := mail.ParseAddress(m.ReplyTo); err != nil {
			return fmt.Errorf("%w: invalid reply-to: %v", ErrInvalidMessage, err)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}

	for _, v := range []string{m.To, m.From, m.ReplyTo, m.Subject} {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: line break in header value", ErrInvalidMessage)
		}
	}
	for _, h := range m.Headers {
		if h.Name == "" || strings.ContainsAny(h.Name, "\r\n:") || strings.ContainsAny(h.Value, "\r\n") {
			return fmt.Errorf("%w: malformed header %q", ErrInvalidMessage, h.Name)
		}
	}
	return nil
}

// envelopeAddress returns the bare address of a "Name <addr>" string.
func envelopeAddress(s string) (string, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

func lower(s string) string { return strings.ToLower(s) }

// isAddressHeader reports headers that API transports carry in dedicated
// fields rather than as raw headers.
func isAddressHeader(name string) bool {
	switch lower(name) {
	case "from", "reply-to", "mime-version", "content-type":
		return true
	}
	return false
}
