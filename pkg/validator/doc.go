// Package validator builds declarative validation rules.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Apply evaluates every rule without short-circuiting and aggregates the
// failures, in rule order, into ValidationErrors, which implements error.
//
//	err := validator.Apply(
//		validator.RequiredString("name", name),
//		validator.RuneLengthBetween("name", name, 2, 100),
//		validator.ValidEmail("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		verrs = verrs.Localize(translate)
//	}
//
// Use When to make a group of rules conditional, for example length checks
// that only make sense once a field is present.
//
// Every constructor captures its value; rules hold no global state and are
// safe for concurrent use.
package validator
