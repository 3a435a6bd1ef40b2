package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBody = 64 << 10

// Sender POSTs JSON payloads. Each Send makes exactly one attempt.
type Sender struct {
	client    *http.Client
	userAgent string
}

// NewSender creates a sender with a pooled HTTP client.
func NewSender() *Sender {
	return &Sender{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: "formrelay-webhook/1.0",
	}
}

// NewSenderWithClient creates a sender using client.
func NewSenderWithClient(client *http.Client) *Sender {
	s := NewSender()
	if client != nil {
		s.client = client
	}
	return s
}

// Send marshals data to JSON and POSTs it to webhookURL. The response body
// is returned, capped at 64KB; non-2xx statuses fail with
// ErrUnexpectedStatus unless WithIgnoreStatus is set.
func (s *Sender) Send(ctx context.Context, webhookURL string, data any, opts ...SendOption) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if err := validateInputs(webhookURL, payload); err != nil {
		return nil, err
	}

	options := defaultSendOptions()
	for _, opt := range opts {
		opt(options)
	}
	client := s.client
	if options.httpClient != nil {
		client = options.httpClient
	}

	start := time.Now()
	body, status, err := s.deliver(ctx, client, webhookURL, payload, options)
	if options.onDelivery != nil {
		options.onDelivery(DeliveryResult{StatusCode: status, Duration: time.Since(start), Error: err})
	}
	return body, err
}

func validateInputs(webhookURL string, payload []byte) error {
	if webhookURL == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(webhookURL)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return fmt.Errorf("%w: payload cannot be empty", ErrInvalidPayload)
	}
	return nil
}

func (s *Sender) deliver(ctx context.Context, client *http.Client, webhookURL string, payload []byte, options *sendOptions) ([]byte, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, errors.Join(ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	for k, v := range options.headers {
		req.Header.Set(k, v)
	}

	if options.signatureSecret != "" {
		sig, err := SignPayload(options.signatureSecret, payload, time.Now())
		if err != nil {
			return nil, 0, err
		}
		sig.Apply(req.Header)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, 0, errors.Join(ErrDeliveryFailed, ErrTimeout, err)
		}
		return nil, 0, errors.Join(ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if options.ignoreStatus || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return body, resp.StatusCode, nil
	}

	msg := strings.ReplaceAll(string(body), "\n", " ")
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return body, resp.StatusCode, errors.Join(
		ErrDeliveryFailed,
		fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, msg),
	)
}
