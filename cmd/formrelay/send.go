package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boubliclub/formrelay/locales"
	"github.com/boubliclub/formrelay/modules/recruitment"
	"github.com/boubliclub/formrelay/pkg/config"
	"github.com/boubliclub/formrelay/pkg/dispatcher"
	"github.com/boubliclub/formrelay/pkg/logger"
)

const (
	viaRelay    = "relay"
	viaEmailAPI = "emailapi"
)

type sendConfig struct {
	Log         logger.Config
	Dispatcher  dispatcher.Config
	Recruitment recruitment.Config
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a form from the terminal",
	}
	cmd.AddCommand(newSendContactCmd(), newSendRecruitmentCmd())
	return cmd
}

func loadSendConfig(cmd *cobra.Command) (sendConfig, *slog.Logger, error) {
	var cfg sendConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, nil, err
	}
	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	return cfg, log, nil
}

func newSendContactCmd() *cobra.Command {
	var (
		name, email, subject, message string
		via, relayURL                 string
	)

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit the contact form",
		Long: `Submit the contact form through the mail relay or the hosted email API.

Example:
  formrelay send contact --name Jo --email jo@example.com \
    --subject Hello --message "Hello there, see you soon"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadSendConfig(cmd)
			if err != nil {
				return err
			}
			if relayURL != "" {
				cfg.Dispatcher.RelayURL = relayURL
			}

			var transport dispatcher.Transport
			switch via {
			case viaRelay:
				transport = dispatcher.NewRelayTransport(nil, cfg.Dispatcher.RelayURL)
			case viaEmailAPI:
				transport, err = dispatcher.NewEmailAPITransportFromConfig(cfg.Dispatcher, nil)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown transport %q, want %s or %s", via, viaRelay, viaEmailAPI)
			}

			tr, err := locales.NewTranslator(cmd.Context(), log)
			if err != nil {
				return err
			}

			form := dispatcher.NewForm("contact", transport, dispatcher.NewTerminalPresenter(cmd.OutOrStdout()),
				dispatcher.WithLabels(dispatcher.LabelsFrom(tr, cfg.Dispatcher.LabelLanguage)),
				dispatcher.WithMessages(dispatcher.MessagesFrom(tr, cfg.Dispatcher.MessageLanguage, "dispatcher")),
				dispatcher.WithOverlayDuration(cfg.Dispatcher.OverlayDuration),
				dispatcher.WithLogger(log),
			)
			_, err = form.Submit(cmd.Context(), dispatcher.Payload{
				"name":    name,
				"email":   email,
				"subject": subject,
				"message": message,
			})
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "sender name")
	f.StringVar(&email, "email", "", "sender email address")
	f.StringVar(&subject, "subject", "", "message subject")
	f.StringVar(&message, "message", "", "message body")
	f.StringVar(&via, "via", viaRelay, "transport: relay or emailapi")
	f.StringVar(&relayURL, "url", "", "relay endpoint, overrides DISPATCHER_RELAY_URL")
	return cmd
}

func newSendRecruitmentCmd() *cobra.Command {
	var (
		app        recruitment.Application
		webhookURL string
	)

	cmd := &cobra.Command{
		Use:   "recruitment",
		Short: "Submit the recruitment form to the webhook",
		Long: `Submit a recruitment application to the configured webhook.

Example:
  formrelay send recruitment --first-name Ana --last-name Diaz \
    --email ana@example.com --interest events --interest design`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadSendConfig(cmd)
			if err != nil {
				return err
			}
			if webhookURL != "" {
				cfg.Recruitment.WebhookURL = webhookURL
			}

			transport, err := recruitment.NewWebhookTransport(cfg.Recruitment, nil, log)
			if err != nil {
				return err
			}
			tr, err := locales.NewTranslator(cmd.Context(), log)
			if err != nil {
				return err
			}

			form, err := recruitment.NewForm(cfg.Recruitment, cfg.Dispatcher, transport,
				dispatcher.NewTerminalPresenter(cmd.OutOrStdout()), tr,
				recruitment.WithDispatcherOptions(dispatcher.WithLogger(log)),
			)
			if err != nil {
				return err
			}
			_, err = form.Submit(cmd.Context(), app)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&app.FirstName, "first-name", "", "first name")
	f.StringVar(&app.LastName, "last-name", "", "last name")
	f.StringVar(&app.Email, "email", "", "email address")
	f.StringVar(&app.Phone, "phone", "", "phone number")
	f.StringVar(&app.Class, "class", "", "class or year")
	f.StringVar(&app.BirthDate, "birth-date", "", "birth date")
	f.StringVar(&app.Motivation, "motivation", "", "why you want to join")
	f.StringVar(&app.Experience, "experience", "", "previous experience")
	f.StringVar(&app.Availability, "availability", "", "availability")
	f.StringArrayVar(&app.Interests, "interest", nil, "area of interest, repeatable")
	f.StringVar(&webhookURL, "webhook", "", "webhook endpoint, overrides RECRUITMENT_WEBHOOK_URL")
	return cmd
}
