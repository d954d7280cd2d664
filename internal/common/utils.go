package common

import (
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
