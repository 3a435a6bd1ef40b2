// Package webhook POSTs JSON payloads to HTTP endpoints.
//
// Sender makes exactly one attempt per Send; callers that want retries
// decide so themselves. Payloads can be signed with HMAC-SHA256 over
// "<unix timestamp>.<body>", carried in the X-Webhook-Signature,
// X-Webhook-Timestamp and X-Webhook-ID headers. Receivers verify with
// ExtractSignatureHeaders and VerifySignature.
//
//	sender := webhook.NewSender()
//	_, err := sender.Send(ctx, url, payload,
//		webhook.WithSignature(secret),
//		webhook.WithTimeout(5*time.Second),
//	)
package webhook
