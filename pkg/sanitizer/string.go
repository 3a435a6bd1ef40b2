package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// blankSet is the set of bytes trimmed from both ends of a value.
const blankSet = " \t\n\r\x00\x0B"

// Trim strips spaces, tabs, line breaks, NUL and vertical tabs from both ends.
// Other Unicode spaces are kept.
func Trim(s string) string {
	return strings.Trim(s, blankSet)
}

// NormalizeUnicode converts s to Unicode normalization form C so that
// composed and decomposed input count the same number of characters.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// StripSlashes removes one level of backslash escaping. An escaped "0"
// becomes a NUL byte and a trailing lone backslash is dropped.
func StripSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			break
		}
		if s[i] == '0' {
			b.WriteByte(0)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// TrimStringSlice trims each element.
func TrimStringSlice(slice []string) []string {
	out := make([]string, len(slice))
	for i, s := range slice {
		out[i] = Trim(s)
	}
	return out
}

// FilterEmpty drops empty elements, keeping order.
func FilterEmpty(slice []string) []string {
	out := make([]string, 0, len(slice))
	for _, s := range slice {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
