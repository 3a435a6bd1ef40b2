package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/boubliclub/formrelay/pkg/webhook"
)

// Payload is the submitted field set.
type Payload map[string]any

// Transport performs the network call for a submission. Every failure,
// whatever its cause, is reported as a non-nil error.
type Transport interface {
	Send(ctx context.Context, p Payload) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, p Payload) error

func (f TransportFunc) Send(ctx context.Context, p Payload) error { return f(ctx, p) }

// EmailAPITransport calls an EmailJS-compatible REST endpoint.
type EmailAPITransport struct {
	sender     *webhook.Sender
	url        string
	serviceID  string
	templateID string
	publicKey  string
}

type emailAPIRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	TemplateParams Payload `json:"template_params"`
}

// NewEmailAPITransport validates the identifiers and returns a transport.
func NewEmailAPITransport(sender *webhook.Sender, apiURL, serviceID, templateID, publicKey string) (*EmailAPITransport, error) {
	if apiURL == "" || serviceID == "" || templateID == "" || publicKey == "" {
		return nil, fmt.Errorf("%w: email API url, service id, template id and public key are required", ErrInvalidConfig)
	}
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &EmailAPITransport{
		sender:     sender,
		url:        apiURL,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
	}, nil
}

// NewEmailAPITransportFromConfig builds the transport from cfg.
func NewEmailAPITransportFromConfig(cfg Config, sender *webhook.Sender) (*EmailAPITransport, error) {
	return NewEmailAPITransport(sender, cfg.EmailAPIURL, cfg.EmailAPIServiceID, cfg.EmailAPITemplateID, cfg.EmailAPIPublicKey)
}

func (t *EmailAPITransport) Send(ctx context.Context, p Payload) error {
	_, err := t.sender.Send(ctx, t.url, emailAPIRequest{
		ServiceID:      t.serviceID,
		TemplateID:     t.templateID,
		UserID:         t.publicKey,
		TemplateParams: p,
	})
	return err
}

// RelayTransport posts the payload as a urlencoded form to the contact
// relay and reads its {success, message} answer.
type RelayTransport struct {
	client *http.Client
	url    string
}

func NewRelayTransport(client *http.Client, relayURL string) *RelayTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &RelayTransport{client: client, url: relayURL}
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (t *RelayTransport) Send(ctx context.Context, p Payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(EncodeForm(p).Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var out relayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return errors.Join(fmt.Errorf("relay answered %d with an unreadable body", resp.StatusCode), err)
	}
	if !out.Success {
		return &RemoteError{Message: out.Message}
	}
	return nil
}

// EncodeForm flattens a payload into form values. Slices become repeated
// keys; other values are formatted with fmt.
func EncodeForm(p Payload) url.Values {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := url.Values{}
	for _, k := range keys {
		switch val := p[k].(type) {
		case nil:
		case string:
			v.Add(k, val)
		case []string:
			for _, s := range val {
				v.Add(k, s)
			}
		default:
			v.Add(k, fmt.Sprint(val))
		}
	}
	return v
}
