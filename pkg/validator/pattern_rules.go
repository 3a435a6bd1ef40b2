package validator

import "regexp"

// headerInjectionRegex matches raw or percent-encoded line breaks and the
// mail headers an attacker would try to smuggle in.
var headerInjectionRegex = regexp.MustCompile(`(?i)(\r\n|\r|\n|%0a|%0d|content-type:|bcc:|cc:|to:)`)

// NoHeaderInjection rejects values that could add mail headers when used
// in a header line.
func NoHeaderInjection(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !headerInjectionRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "contains forbidden header sequences",
			TranslationKey: "validation.header_injection",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
