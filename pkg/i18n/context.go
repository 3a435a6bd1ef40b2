package i18n

import "context"

type localeContextKey struct{}

// SetLocale stores the language for Tc.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the language stored by SetLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeContextKey{}).(string)
	return locale, ok && locale != ""
}
