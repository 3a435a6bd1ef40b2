package webhook

import (
	"net/http"
	"time"
)

// DeliveryResult describes the single delivery attempt.
type DeliveryResult struct {
	StatusCode int
	Duration   time.Duration
	Error      error
}

// DeliveryHook is called after the delivery attempt.
type DeliveryHook func(result DeliveryResult)

type sendOptions struct {
	timeout         time.Duration
	headers         map[string]string
	httpClient      *http.Client
	signatureSecret string
	onDelivery      DeliveryHook
	ignoreStatus    bool
}

func defaultSendOptions() *sendOptions {
	return &sendOptions{
		timeout: 10 * time.Second,
		headers: make(map[string]string),
	}
}

// SendOption configures a single Send.
type SendOption func(*sendOptions)

// WithTimeout sets the request timeout. Default is 10 seconds.
func WithTimeout(timeout time.Duration) SendOption {
	return func(o *sendOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithSignature signs the body with HMAC-SHA256. An empty secret disables
// signing.
func WithSignature(secret string) SendOption {
	return func(o *sendOptions) {
		o.signatureSecret = secret
	}
}

// WithHTTPClient overrides the sender's client for this request.
func WithHTTPClient(client *http.Client) SendOption {
	return func(o *sendOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithOnDelivery observes the delivery attempt.
func WithOnDelivery(hook DeliveryHook) SendOption {
	return func(o *sendOptions) {
		o.onDelivery = hook
	}
}

// WithIgnoreStatus treats any HTTP response as delivered. Only transport
// errors fail the send. Used for endpoints whose answer cannot be read,
// such as spreadsheet script hooks behind redirects.
func WithIgnoreStatus() SendOption {
	return func(o *sendOptions) {
		o.ignoreStatus = true
	}
}
