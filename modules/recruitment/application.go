package recruitment

import (
	"strings"
	"time"

	"github.com/boubliclub/formrelay/pkg/dispatcher"
	"github.com/boubliclub/formrelay/pkg/sanitizer"
)

// TimestampLayout formats the submission time sent to the webhook.
const TimestampLayout = "02/01/2006 15:04:05"

// Application is a recruitment form submission.
type Application struct {
	FirstName    string   `json:"firstName" form:"first_name"`
	LastName     string   `json:"lastName" form:"last_name"`
	Email        string   `json:"email" form:"email"`
	Phone        string   `json:"phone" form:"phone"`
	Class        string   `json:"class" form:"class"`
	BirthDate    string   `json:"birthDate" form:"birth_date"`
	Motivation   string   `json:"motivation" form:"motivation"`
	Experience   string   `json:"experience" form:"experience"`
	Availability string   `json:"availability" form:"availability"`
	Interests    []string `json:"interests" form:"interests"`
}

var cleanInterests = sanitizer.Compose(sanitizer.TrimStringSlice, sanitizer.FilterEmpty)

// Payload builds the webhook body. Interests are trimmed, blanks dropped
// and the rest joined with ", "; now is formatted in its own location.
func Payload(app Application, now time.Time) dispatcher.Payload {
	return dispatcher.Payload{
		"firstName":    sanitizer.Trim(app.FirstName),
		"lastName":     sanitizer.Trim(app.LastName),
		"email":        sanitizer.Trim(app.Email),
		"phone":        sanitizer.Trim(app.Phone),
		"class":        sanitizer.Trim(app.Class),
		"birthDate":    sanitizer.Trim(app.BirthDate),
		"motivation":   sanitizer.Trim(app.Motivation),
		"experience":   sanitizer.Trim(app.Experience),
		"availability": sanitizer.Trim(app.Availability),
		"interests":    strings.Join(cleanInterests(app.Interests), ", "),
		"timestamp":    now.Format(TimestampLayout),
	}
}
