// Package contact serves the Boubli Club contact form.
//
// A POST to the mounted route runs, in order: the abuse guard (honeypot,
// then a per-session cooldown), the sanitizer, the field validator (with an
// MX lookup for the sender domain), the mail composer and the relay, which
// hands the message to an email.Sender exactly once and appends a line to
// the success or failure journal. Every response is a JSON
// {"success":bool,"message":string} envelope with a French message.
//
//	svc, err := contact.NewService(cfg,
//		contact.NewGuard(contact.Honeypot(), contact.Cooldown(cooldown, contact.SessionKey)),
//		contact.NewValidator(mx, translator, cfg.Language, log),
//		contact.NewComposer(cfg.RecipientFor(env), cfg.SenderDomain),
//		contact.NewRelay(sender, journal, log),
//		translator,
//		contact.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	r.Mount("/contact", contact.Router(svc, contact.RouterOptions{Sessions: sessions}))
package contact
