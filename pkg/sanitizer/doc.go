// Package sanitizer provides small, composable string cleaning helpers.
//
// Field is the pipeline applied to every contact form value before it is
// validated or rendered: Unicode NFC normalization, trimming of the ASCII
// blank set, backslash unescaping and HTML escaping with both quote styles.
//
//	clean := sanitizer.Compose(
//		sanitizer.Trim,
//		sanitizer.EscapeHTML,
//	)
//	name := clean(raw)
//
// Field is not idempotent: escaping an already escaped value escapes its
// ampersands again ("&amp;" becomes "&amp;amp;"). Apply it exactly once.
package sanitizer
