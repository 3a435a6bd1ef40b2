package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates a bare address (no display name) with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return isEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// DeliverableEmail is ValidEmail plus hasMX(domain), reported as one error.
// hasMX is only called for syntactically valid addresses.
func DeliverableEmail(field, value string, hasMX func(domain string) bool) Rule {
	return Rule{
		Check: func() bool {
			if !isEmail(value) {
				return false
			}
			return hasMX(EmailDomain(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// EmailDomain returns the part after the last '@', or an empty string.
func EmailDomain(email string) string {
	idx := strings.LastIndexByte(email, '@')
	if idx < 0 {
		return ""
	}
	return email[idx+1:]
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Name != "" || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}
