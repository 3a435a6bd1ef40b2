package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// DefaultLanguage is used when none is configured.
const DefaultLanguage = "fr"

// Translator resolves keys against loaded catalogs. It is immutable after
// construction and safe for concurrent use.
type Translator struct {
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a key is missing in the
// requested one.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey returns the key itself for missing translations.
// Enabled by default.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger logs missing keys at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
			t.logMissing = true
		}
	}
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, tr := range translations {
		if lang == "" || tr == nil {
			return nil, fmt.Errorf("%w: empty language entry", ErrInvalidCatalog)
		}
	}
	t.translations = translations
	return t, nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// HasTranslation reports whether key resolves to a string in lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	current, ok := t.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		if current, ok = val.(map[string]any); !ok {
			return "", false
		}
	}
	return "", false
}

// T translates key into lang, substituting %{name} placeholders from args
// given as name, value pairs.
func (t *Translator) T(lang, key string, args ...string) string {
	if s, ok := t.resolve(lang, key); ok {
		return substitute(s, args)
	}
	if t.fallbackToKey {
		return substitute(key, args)
	}
	return ""
}

// Td is T with an explicit default for missing keys.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if s, ok := t.resolve(lang, key); ok {
		return substitute(s, args)
	}
	return substitute(defaultValue, args)
}

// Tc translates using the language stored in ctx by SetLocale.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	lang, ok := LocaleFromContext(ctx)
	if !ok {
		lang = t.defaultLang
	}
	return t.T(lang, key, args...)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	if s, ok := t.lookup(lang, key); ok {
		return s, true
	}
	if lang != t.defaultLang {
		if s, ok := t.lookup(t.defaultLang, key); ok {
			return s, true
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

// Substitute replaces %{name} placeholders in tmpl from name, value pairs.
func Substitute(tmpl string, args ...string) string {
	return substitute(tmpl, args)
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
