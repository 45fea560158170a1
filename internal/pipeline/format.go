package pipeline

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatInt formats n with comma thousands separators.
func FormatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}

// Capitalize upper-cases the first letter and lower-cases the rest, the way
// category cards are labelled.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
