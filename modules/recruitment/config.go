package recruitment

import "time"

// Config configures the webhook transport.
type Config struct {
	WebhookURL string        `env:"RECRUITMENT_WEBHOOK_URL"`
	Secret     string        `env:"RECRUITMENT_WEBHOOK_SECRET"`
	Timezone   string        `env:"RECRUITMENT_TIMEZONE" envDefault:"Europe/Paris"`
	Timeout    time.Duration `env:"RECRUITMENT_WEBHOOK_TIMEOUT" envDefault:"10s"`
}
