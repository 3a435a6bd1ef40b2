package contact

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/boubliclub/formrelay/pkg/i18n"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/mxcheck"
	"github.com/boubliclub/formrelay/pkg/validator"
)

const (
	NameMinRunes    = 2
	NameMaxRunes    = 100
	MessageMinRunes = 10
	MessageMaxRunes = 2000
)

// Validator checks sanitized fields and localizes the failures.
type Validator struct {
	mx   mxcheck.Resolver
	tr   *i18n.Translator
	lang string
	log  *slog.Logger
}

// NewValidator creates a Validator. A nil translator keeps the rule
// defaults, a nil resolver skips the MX lookup.
func NewValidator(mx mxcheck.Resolver, tr *i18n.Translator, lang string, log *slog.Logger) *Validator {
	if mx == nil {
		mx = mxcheck.Static{Default: true}
	}
	if log == nil {
		log = slog.Default()
	}
	if lang == "" {
		lang = "fr"
	}
	return &Validator{mx: mx, tr: tr, lang: lang, log: log}
}

// Validate returns nil or validator.ValidationErrors in field order name,
// email, subject, message. Length rules only run for present fields.
func (v *Validator) Validate(ctx context.Context, f Fields) error {
	rules := []validator.Rule{validator.RequiredString("name", f.Name)}
	rules = append(rules, validator.When(f.Name != "",
		validator.RuneLengthBetween("name", f.Name, NameMinRunes, NameMaxRunes),
	)...)

	rules = append(rules, validator.RequiredString("email", f.Email))
	rules = append(rules, validator.When(f.Email != "",
		validator.DeliverableEmail("email", f.Email, v.hasMX(ctx)),
		validator.NoHeaderInjection("email", f.Email),
	)...)

	rules = append(rules, validator.RequiredString("subject", f.Subject))

	rules = append(rules, validator.RequiredString("message", f.Message))
	rules = append(rules, validator.When(f.Message != "",
		validator.MinRunes("message", f.Message, MessageMinRunes),
		validator.MaxRunes("message", f.Message, MessageMaxRunes),
	)...)

	err := validator.Apply(rules...)
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return verrs.Localize(v.translate)
	}
	return err
}

func (v *Validator) hasMX(ctx context.Context) func(string) bool {
	return func(domain string) bool {
		ok, err := v.mx.HasMX(ctx, domain)
		if err != nil {
			v.log.DebugContext(ctx, "mx lookup failed",
				slog.String("domain", domain),
				logger.Error(err),
				logger.Component("contact"),
			)
			return false
		}
		return ok
	}
}

// translate maps "validation.<rule>" to "contact.<field>.<rule>".
func (v *Validator) translate(e validator.ValidationError) string {
	if v.tr == nil {
		return ""
	}
	rule := e.TranslationKey[strings.LastIndexByte(e.TranslationKey, '.')+1:]

	args := make([]string, 0, 4)
	for _, name := range []string{"min", "max"} {
		if n, ok := e.TranslationValues[name].(int); ok {
			args = append(args, name, strconv.Itoa(n))
		}
	}
	return v.tr.Td(v.lang, "contact."+e.Field+"."+rule, "", args...)
}
