package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when the request body is not in the
	// binder's format. Callers chaining binders skip it.
	ErrBinderNotApplicable  = errors.New("binder.not_applicable")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrInvalidJSON          = errors.New("binder.invalid_json")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)

// IsBindingError reports whether err is a malformed-request error produced
// by one of the binders.
func IsBindingError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrInvalidForm) ||
		errors.Is(err, ErrInvalidJSON)
}
