package contact

import (
	"github.com/boubliclub/formrelay/pkg/environment"
	"github.com/boubliclub/formrelay/pkg/mxcheck"
	"github.com/boubliclub/formrelay/pkg/ratelimiter"
)

const (
	// DefaultRecipient receives every production submission.
	DefaultRecipient = "meftahmouna691@gmail.com"
	SenderName       = "Formulaire Boubli Club"
	SubjectPrefix    = "[Boubli Club Contact] "
	Mailer           = "formrelay"
)

// Config configures the contact module.
type Config struct {
	// Recipient overrides DefaultRecipient outside production.
	Recipient string `env:"CONTACT_RECIPIENT"`
	// SenderDomain replaces the request host in the From address.
	SenderDomain string `env:"CONTACT_SENDER_DOMAIN"`
	Language     string `env:"CONTACT_LANGUAGE" envDefault:"fr"`
	Timezone     string `env:"CONTACT_TIMEZONE" envDefault:"Europe/Paris"`
	IPLimit      bool   `env:"CONTACT_IP_LIMIT" envDefault:"true"`

	Bucket   ratelimiter.Config
	Cooldown ratelimiter.CooldownConfig
	MX       mxcheck.Config
}

// RecipientFor returns the address submissions are delivered to in env.
func (c Config) RecipientFor(env environment.Environment) string {
	if env.IsProduction() || c.Recipient == "" {
		return DefaultRecipient
	}
	return c.Recipient
}

func (c Config) language() string {
	if c.Language == "" {
		return "fr"
	}
	return c.Language
}
