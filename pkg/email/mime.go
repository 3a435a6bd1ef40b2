package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/google/uuid"
)

// reserved headers are written by Bytes and ignored in Message.Headers.
var reserved = map[string]bool{
	"to":                        true,
	"subject":                   true,
	"date":                      true,
	"message-id":                true,
	"content-transfer-encoding": true,
}

// Bytes renders msg as an RFC 5322 message with a quoted-printable HTML
// body. From, Reply-To, MIME-Version and Content-Type come from
// msg.Headers when present.
func (m Message) Bytes(now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	write := func(name, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
	}

	domain := "localhost"
	if addr, err := envelopeAddress(m.From); err == nil {
		if at := strings.LastIndexByte(addr, '@'); at >= 0 {
			domain = addr[at+1:]
		}
	}

	write("Date", now.Format(time.RFC1123Z))
	write("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domain))
	if m.Header("From") == "" {
		write("From", m.From)
	}
	write("To", m.To)
	if m.ReplyTo != "" && m.Header("Reply-To") == "" {
		write("Reply-To", m.ReplyTo)
	}
	write("Subject", mime.QEncoding.Encode("UTF-8", m.Subject))
	if m.Header("MIME-Version") == "" {
		write("MIME-Version", "1.0")
	}
	if m.Header("Content-Type") == "" {
		write("Content-Type", "text/html; charset=UTF-8")
	}
	for _, h := range m.Headers {
		if reserved[strings.ToLower(h.Name)] {
			continue
		}
		write(h.Name, h.Value)
	}
	write("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(m.HTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
