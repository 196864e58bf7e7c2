package utils

import (
	"strings"
	"unicode"
)

// IsNumeric reports whether s is non-empty and made of ASCII decimal digits only.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// StripNonPrintChars removes non-printable characters from the string.
// Newlines and tabs are kept so that device output keeps its layout.
func StripNonPrintChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}
