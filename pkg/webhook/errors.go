package webhook

import "errors"

var (
	ErrDeliveryFailed       = errors.New("webhook.delivery_failed")
	ErrInvalidConfiguration = errors.New("webhook.invalid_configuration")
	ErrInvalidPayload       = errors.New("webhook.invalid_payload")
	ErrInvalidURL           = errors.New("webhook.invalid_url")
	ErrTimeout              = errors.New("webhook.timeout")
	ErrUnexpectedStatus     = errors.New("webhook.unexpected_status")
	ErrInvalidSignature     = errors.New("webhook.invalid_signature")
)
