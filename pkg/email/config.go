package email

import "time"

// Config selects and configures the mail transport.
// Only the block matching Driver needs to be filled.
type Config struct {
	Driver string `env:"MAIL_DRIVER" envDefault:"dev"`

	DevDir string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost      string        `env:"SMTP_HOST"`
	SMTPPort      int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string        `env:"SMTP_USERNAME"`
	SMTPPassword  string        `env:"SMTP_PASSWORD"`
	SMTPSecurity  string        `env:"SMTP_SECURITY" envDefault:"starttls"` // starttls, tls or plain
	SMTPTimeout   time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	SMTPLocalName string        `env:"SMTP_LOCAL_NAME"`

	SESRegion          string `env:"SES_REGION" envDefault:"eu-west-3"`
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`
	SESEndpoint        string `env:"SES_ENDPOINT"`
}

// Mail drivers.
const (
	DriverDev      = "dev"
	DriverSMTP     = "smtp"
	DriverPostmark = "postmark"
	DriverSES      = "ses"
)
