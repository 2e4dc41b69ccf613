package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9 -]+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	hyphenRun      = regexp.MustCompile(`-+`)
	unsafeFileChar = regexp.MustCompile(`[^A-Za-z0-9.-]`)
)

// GenerateSlug turns a title into a URL slug: lowercase, strip everything
// outside [a-z0-9 space hyphen], collapse whitespace and hyphen runs, trim
// edge hyphens. Uniqueness is enforced by the slug column, not here.
func GenerateSlug(title string) string {
	s := strings.ToLower(title)
	s = slugInvalid.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeFileName replaces every character outside [A-Za-z0-9.-] with "_".
func SanitizeFileName(name string) string {
	return unsafeFileChar.ReplaceAllString(name, "_")
}
