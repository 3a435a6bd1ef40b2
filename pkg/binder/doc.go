// Package binder decodes HTTP request bodies into tagged structs.
//
// Binders are plain functions with the handler.Bind signature. Each one
// inspects the request content type and returns ErrBinderNotApplicable when
// the body is not its format, so several binders can be chained:
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, Submission](
//		binder.Form(),
//		binder.JSON(),
//	))
//
// Form fields are matched by the `form` tag, JSON fields by the standard
// `json` tag.
package binder
