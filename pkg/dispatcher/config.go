package dispatcher

import (
	"time"

	"github.com/boubliclub/formrelay/pkg/i18n"
)

// Config configures forms and their transports.
type Config struct {
	OverlayDuration time.Duration `env:"DISPATCHER_OVERLAY_DURATION" envDefault:"5s"`
	LabelLanguage   string        `env:"DISPATCHER_LABEL_LANGUAGE" envDefault:"en"`
	MessageLanguage string        `env:"DISPATCHER_MESSAGE_LANGUAGE" envDefault:"fr"`

	RelayURL string `env:"DISPATCHER_RELAY_URL" envDefault:"http://localhost:8080/contact"`

	EmailAPIURL        string `env:"EMAILJS_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	EmailAPIServiceID  string `env:"EMAILJS_SERVICE_ID"`
	EmailAPITemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	EmailAPIPublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
}

// Labels are the submit control captions.
type Labels struct {
	Idle string
	Busy string
}

// Messages are the overlay texts for transport outcomes.
type Messages struct {
	Success string
	Failure string
}

// DefaultLabels are used when no catalog is configured.
var DefaultLabels = Labels{Idle: "Send ✉️", Busy: "Sending... ⏳"}

// DefaultMessages are used when no catalog is configured.
var DefaultMessages = Messages{
	Success: "Merci pour votre message ! Nous vous répondrons dans les plus brefs délais.",
	Failure: "Une erreur est survenue lors de l'envoi. Veuillez réessayer plus tard ou nous contacter directement.",
}

// LabelsFrom reads labels from the catalog.
func LabelsFrom(tr *i18n.Translator, lang string) Labels {
	return Labels{
		Idle: tr.Td(lang, "dispatcher.label.idle", DefaultLabels.Idle),
		Busy: tr.Td(lang, "dispatcher.label.busy", DefaultLabels.Busy),
	}
}

// MessagesFrom reads overlay texts from the catalog under prefix, such as
// "dispatcher" or "recruitment".
func MessagesFrom(tr *i18n.Translator, lang, prefix string) Messages {
	return Messages{
		Success: tr.Td(lang, prefix+".success", DefaultMessages.Success),
		Failure: tr.Td(lang, prefix+".failure", DefaultMessages.Failure),
	}
}
