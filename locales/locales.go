// Package locales embeds the message catalogs.
package locales

import (
	"context"
	"embed"
	"log/slog"

	"github.com/boubliclub/formrelay/pkg/i18n"
)

//go:embed *.yaml
var FS embed.FS

// NewTranslator loads the embedded catalogs with French as the default
// language.
func NewTranslator(ctx context.Context, log *slog.Logger) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(i18n.NewYAMLParser(), FS, "."),
		i18n.WithDefaultLanguage("fr"),
		i18n.WithLogger(log),
	)
}
