package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("i18n.nil_adapter")
	ErrNoTranslations      = errors.New("i18n.no_translations")
	ErrInvalidCatalog      = errors.New("i18n.invalid_catalog")
	ErrFailedToParseYAML   = errors.New("i18n.failed_to_parse_yaml")
	ErrFailedToReadCatalog = errors.New("i18n.failed_to_read_catalog")
	ErrLoadingCancelled    = errors.New("i18n.loading_cancelled")
)
