package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSanitizedLength is the maximum number of characters kept by Sanitize.
const MaxSanitizedLength = 1000

var (
	scriptBlockRegexp = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	markupTagRegexp   = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize trims s, removes script blocks and every other markup tag, and
// truncates the result to MaxSanitizedLength characters.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(s)
	s = scriptBlockRegexp.ReplaceAllString(s, "")
	s = markupTagRegexp.ReplaceAllString(s, "")
	if utf8.RuneCountInString(s) > MaxSanitizedLength {
		s = string([]rune(s)[:MaxSanitizedLength])
	}
	return s
}

// SanitizeEmail sanitizes s and lowercases it.
func SanitizeEmail(s string) string {
	return strings.ToLower(Sanitize(s))
}
