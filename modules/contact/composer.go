package contact

import (
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/boubliclub/formrelay/pkg/email"
	"github.com/boubliclub/formrelay/pkg/email/templates"
)

// DateLayout formats the submission time in the message body.
const DateLayout = "02/01/2006 à 15:04:05"

// Meta describes the request a submission arrived with.
type Meta struct {
	ClientIP    string
	SubmittedAt time.Time
	Host        string
}

// Composer turns accepted fields into an email.Message.
type Composer struct {
	recipient    string
	senderDomain string
}

// NewComposer creates a Composer delivering to recipient. A non-empty
// senderDomain replaces the request host in the From address.
func NewComposer(recipient, senderDomain string) *Composer {
	if recipient == "" {
		recipient = DefaultRecipient
	}
	return &Composer{recipient: recipient, senderDomain: senderDomain}
}

// Compose renders the notification for f. Field values are embedded as
// they are, so they must come from Sanitize.
func (c *Composer) Compose(ctx context.Context, f Fields, meta Meta) (email.Message, error) {
	body, err := templates.Render(ctx, MessageBody(f, meta))
	if err != nil {
		return email.Message{}, err
	}

	from := SenderName + " <noreply@" + c.domain(meta.Host) + ">"
	return email.Message{
		To:      c.recipient,
		From:    from,
		ReplyTo: f.Email,
		Subject: SubjectPrefix + foldLines.Replace(f.Subject),
		HTML:    body,
		Headers: []email.Header{
			{Name: "MIME-Version", Value: "1.0"},
			{Name: "Content-Type", Value: "text/html; charset=UTF-8"},
			{Name: "From", Value: from},
			{Name: "Reply-To", Value: f.Email},
			{Name: "X-Mailer", Value: Mailer},
			{Name: "X-Priority", Value: "1"},
		},
		Tag: "contact",
	}, nil
}

func (c *Composer) domain(host string) string {
	if c.senderDomain != "" {
		return c.senderDomain
	}
	return hostname(host)
}

// hostname strips the port and falls back to localhost for anything that
// is not a plain DNS name or IP.
func hostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))
	if host == "" {
		return "localhost"
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
		default:
			return "localhost"
		}
	}
	return host
}

const (
	bodyOpen = `<!DOCTYPE html>
<html>
<head>
    <meta charset='UTF-8'>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #dc2626; color: white; padding: 20px; border-radius: 5px 5px 0 0; }
        .content { background: #f9f9f9; padding: 20px; border: 1px solid #ddd; }
        .info-row { margin: 15px 0; padding: 10px; background: white; border-left: 3px solid #dc2626; }
        .label { font-weight: bold; color: #dc2626; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class='container'>
        <div class='header'>
            <h2 style='margin: 0;'>📧 Nouveau Message - Boubli Club</h2>
        </div>
        <div class='content'>
`
	bodyClose = `        </div>
        <div class='footer'>
            <p>Ce message a été envoyé depuis le formulaire de contact de Boubli Club</p>
        </div>
    </div>
</body>
</html>
`
)

// foldLines keeps a multi-line subject on one header line.
var foldLines = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

var lineBreaks = strings.NewReplacer("\r\n", "<br>\r\n", "\n", "<br>\n", "\r", "<br>\r")

// MessageBody is the HTML notification sent to the club.
func MessageBody(f Fields, meta Meta) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(bodyOpen)
		infoRow(&b, "Nom :", " "+f.Name)
		infoRow(&b, "Email :", " <a href='mailto:"+f.Email+"'>"+f.Email+"</a>")
		infoRow(&b, "Sujet :", " "+f.Subject)
		infoRow(&b, "Message :", "<br><br>\n                "+lineBreaks.Replace(f.Message))
		infoRow(&b, "Date :", " "+templ.EscapeString(meta.SubmittedAt.Format(DateLayout)))
		infoRow(&b, "IP :", " "+templ.EscapeString(meta.ClientIP))
		b.WriteString(bodyClose)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func infoRow(b *strings.Builder, label, content string) {
	b.WriteString("            <div class='info-row'>\n                <span class='label'>")
	b.WriteString(label)
	b.WriteString("</span>")
	b.WriteString(content)
	b.WriteString("\n            </div>\n")
}
