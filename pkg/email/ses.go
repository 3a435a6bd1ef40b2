package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

// SESConfig configures SESSender. Static credentials are optional; the
// default AWS credential chain is used without them.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// SESSender sends through Amazon SES.
type SESSender struct {
	client *ses.Client
}

// rejectionCodes are SES error codes meaning the message will never be
// accepted as is.
var rejectionCodes = map[string]bool{
	"MessageRejected":                       true,
	"MailFromDomainNotVerifiedException":    true,
	"ConfigurationSetDoesNotExistException": true,
	"AccountSendingPausedException":         true,
}

// NewSESSender loads AWS configuration and builds an SES client with
// retries disabled.
func NewSESSender(ctx context.Context, cfg SESConfig) (*SESSender, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: SES region is required", ErrInvalidConfig)
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("%w: SES access key id and secret go together", ErrInvalidConfig)
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		o.RetryMaxAttempts = 1
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &SESSender{client: client}, nil
}

func (s *SESSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := msg.From
	if v := msg.Header("From"); v != "" {
		from = v
	}

	input := &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if msg.Tag != "" {
		input.Tags = []types.MessageTag{{Name: aws.String("category"), Value: aws.String(msg.Tag)}}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && rejectionCodes[apiErr.ErrorCode()] {
			return errors.Join(ErrFailedToSendEmail, ErrRejected, err)
		}
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
