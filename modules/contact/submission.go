package contact

import "github.com/boubliclub/formrelay/pkg/sanitizer"

// Submission is the raw contact form body. Website is the honeypot field
// and must stay empty.
type Submission struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
	Website string `form:"website" json:"website"`
}

// Fields holds sanitized values. Each one is HTML-escaped and safe to
// embed in the message body as is.
type Fields struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Sanitize runs sanitizer.Field over every user-supplied value.
func Sanitize(s Submission) Fields {
	return Fields{
		Name:    sanitizer.Field(s.Name),
		Email:   sanitizer.Field(s.Email),
		Subject: sanitizer.Field(s.Subject),
		Message: sanitizer.Field(s.Message),
	}
}
