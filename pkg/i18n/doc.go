// Package i18n looks up user-facing messages in YAML catalogs.
//
// Catalog files are keyed by language at the top level and nest keys
// below it; lookups use dot notation:
//
//	fr:
//	  contact:
//	    name:
//	      required: "Le nom est requis."
//
// Placeholders take the form %{name} and are filled from key/value
// arguments:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales.FS, "."),
//		i18n.WithDefaultLanguage("fr"),
//	)
//	msg := tr.T("fr", "contact.name.min_length", "min", "2")
//
// Missing keys fall back to the default language, then to the key itself.
package i18n
