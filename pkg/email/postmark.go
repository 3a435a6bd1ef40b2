package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender sends through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender requires both tokens.
func NewPostmarkSender(serverToken, accountToken string) (*PostmarkSender, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if accountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	return &PostmarkSender{client: postmark.NewClient(serverToken, accountToken)}, nil
}

// WithBaseURL points the client at another API root. Used in tests.
func (s *PostmarkSender) WithBaseURL(url string) *PostmarkSender {
	s.client.BaseURL = url
	return s
}

func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	var headers []postmark.Header
	for _, h := range msg.Headers {
		if reserved[lower(h.Name)] || isAddressHeader(h.Name) {
			continue
		}
		headers = append(headers, postmark.Header{Name: h.Name, Value: h.Value})
	}

	from := msg.From
	if v := msg.Header("From"); v != "" {
		from = v
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTML,
		Headers:  headers,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			ErrRejected,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
