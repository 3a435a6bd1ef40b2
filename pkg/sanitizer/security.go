package sanitizer

import "strings"

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#039;",
)

// EscapeHTML escapes & < > " and ' as named or numeric entities.
// Invalid UTF-8 sequences are replaced with U+FFFD first.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD"))
}

// Field is the full pipeline for a single form value.
var Field = Compose(
	NormalizeUnicode,
	Trim,
	StripSlashes,
	EscapeHTML,
)
