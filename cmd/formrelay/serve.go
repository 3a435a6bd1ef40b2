package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/boubliclub/formrelay/handler"
	"github.com/boubliclub/formrelay/locales"
	"github.com/boubliclub/formrelay/modules/contact"
	"github.com/boubliclub/formrelay/pkg/clientip"
	"github.com/boubliclub/formrelay/pkg/config"
	"github.com/boubliclub/formrelay/pkg/cookie"
	"github.com/boubliclub/formrelay/pkg/email"
	"github.com/boubliclub/formrelay/pkg/environment"
	"github.com/boubliclub/formrelay/pkg/httpserver"
	"github.com/boubliclub/formrelay/pkg/journal"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/mxcheck"
	"github.com/boubliclub/formrelay/pkg/ratelimiter"
	"github.com/boubliclub/formrelay/pkg/redis"
	"github.com/boubliclub/formrelay/pkg/requestid"
	"github.com/boubliclub/formrelay/pkg/session"
)

type serveConfig struct {
	AppEnv           string        `env:"APP_ENV" envDefault:"development"`
	Service          string        `env:"SERVICE_NAME" envDefault:"formrelay"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`

	HTTP     httpserver.Config
	Log      logger.Config
	Redis    redis.Config
	Cookie   cookie.Config
	Session  session.Config
	ClientIP clientip.Config
	Mail     email.Config
	Journal  journal.Config
	Contact  contact.Config
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contact form relay",
		Long: `Serve POST /contact plus /healthz and /readyz.

Example:
  formrelay serve
  formrelay serve --addr :9000 --env-file .env.staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg serveConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func serve(ctx context.Context, cfg serveConfig) error {
	env := environment.Parse(cfg.AppEnv)
	log := logger.New(
		logger.WithEnvironment(env, cfg.Service),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
			session.LoggerExtractor(),
		),
	)

	a, err := newApp(ctx, cfg, env, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to start", logger.Error(err))
		return err
	}
	defer func() { _ = a.Close() }()

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger) {
			if err := a.Close(); err != nil {
				l.Error("failed to release resources", logger.Error(err))
			}
		}),
	)
	return srv.Run(ctx, a.handler)
}

// app holds the wired relay and the resources it must release.
type app struct {
	handler http.Handler
	checks  map[string]httpserver.Check

	closeOnce sync.Once
	closers   []func() error
	closeErr  error
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		for _, fn := range slices.Backward(a.closers) {
			errs = append(errs, fn())
		}
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}

func newApp(ctx context.Context, cfg serveConfig, env environment.Environment, log *slog.Logger) (_ *app, err error) {
	a := &app{checks: map[string]httpserver.Check{}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	tr, err := locales.NewTranslator(ctx, log)
	if err != nil {
		return nil, err
	}

	mem := ratelimiter.NewMemoryStore()
	a.onClose(func() error { mem.Close(); return nil })

	var cooldownStore ratelimiter.CooldownStore = mem
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.onClose(client.Close)
		a.checks["redis"] = redis.Healthcheck(client)
		cooldownStore = redisCooldownStore(client, cfg.Redis)
	}

	cooldown, err := ratelimiter.NewCooldown(cooldownStore, cfg.Contact.Cooldown)
	if err != nil {
		return nil, err
	}

	codec, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, err
	}

	sender, err := email.NewFromConfig(ctx, cfg.Mail)
	if err != nil {
		return nil, err
	}

	jr := journal.New(cfg.Journal)
	a.onClose(jr.Close)

	checks := []contact.Check{contact.Honeypot(), contact.Cooldown(cooldown, contact.SessionKey)}
	if cfg.Contact.IPLimit {
		bucket, err := ratelimiter.NewBucket(mem, cfg.Contact.Bucket)
		if err != nil {
			return nil, err
		}
		checks = append(checks, contact.IPLimit(bucket))
	}

	svc, err := contact.NewService(cfg.Contact,
		contact.NewGuard(checks...),
		contact.NewValidator(mxcheck.NewFromConfig(cfg.Contact.MX), tr, cfg.Contact.Language, log),
		contact.NewComposer(cfg.Contact.RecipientFor(env), cfg.Contact.SenderDomain),
		contact.NewRelay(sender, jr, log),
		tr,
		contact.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	sessions := session.NewFromConfig(cfg.Session, codec,
		session.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "session unavailable",
				logger.Component("session"),
				logger.Error(err),
			)
			_ = handler.Failure(http.StatusInternalServerError, svc.Message("internal_error")).Render(w, r)
		}),
	)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.NewFromConfig(cfg.ClientIP).Middleware,
		environment.Middleware(env),
	)
	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, a.checks))
	r.Mount("/contact", contact.Router(svc, contact.RouterOptions{Sessions: sessions}))

	a.handler = r
	log.InfoContext(ctx, "contact relay ready",
		slog.String("mail_driver", cfg.Mail.Driver),
		slog.Bool("redis", cfg.Redis.Enabled()),
		slog.Bool("ip_limit", cfg.Contact.IPLimit),
		slog.Bool("mx_check", cfg.Contact.MX.Enabled),
	)
	return a, nil
}

// redisCooldownStore keeps cooldown timestamps under
// <REDIS_KEY_PREFIX>cooldown:<key>.
func redisCooldownStore(client goredis.UniversalClient, cfg redis.Config) *ratelimiter.RedisCooldownStore {
	return ratelimiter.NewRedisCooldownStore(client, cfg.KeyPrefix)
}
