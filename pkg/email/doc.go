// Package email sends HTML messages through a pluggable transport.
//
// Sender is the single abstraction. Four implementations are provided:
//   - SMTPSender speaks SMTP (STARTTLS, implicit TLS or plain) with optional
//     SASL PLAIN authentication.
//   - PostmarkSender uses Postmark's transactional API.
//   - SESSender uses Amazon SES with SDK retries disabled.
//   - DevSender writes the body and envelope to a directory.
//
// NewFromConfig picks one from Config.Driver (MAIL_DRIVER). Every sender
// validates the Message first and makes exactly one delivery attempt;
// failures wrap ErrFailedToSendEmail, and permanent refusals additionally
// wrap ErrRejected.
//
//	sender, err := email.NewFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.Send(ctx, email.Message{
//		To:      "contact@example.com",
//		From:    "Formulaire <noreply@example.com>",
//		Subject: "Hello",
//		HTML:    body,
//	})
//
// Bodies are usually rendered from templ components with templates.Render.
package email
