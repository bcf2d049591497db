// Package sanitize normalizes user-supplied file names into safe object
// storage key segments.
//
// Object keys travel through URLs, signed requests and bucket listings,
// so key segments keep only alphanumerics and the characters . - _
package sanitize

import (
	"regexp"
	"strings"
)

var keyCharPattern = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileName reduces a file name to a safe key segment, preserving the
// extension. Whitespace and every character outside [a-zA-Z0-9._-] are
// replaced with a single dash; runs collapse to one dash.
//
//	"My Report (final).pdf" -> "My-Report-final.pdf"
func FileName(name string) string {
	name = removeInvisibleChars(name)
	name = strings.TrimSpace(name)

	name = keyCharPattern.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	// Collapse dash runs left by adjacent replacements like " (".
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	// Replacement dashes next to the extension dot read as noise.
	name = strings.ReplaceAll(name, "-.", ".")
	name = strings.ReplaceAll(name, ".-", ".")

	if name == "" {
		return "file"
	}
	return name
}

// removeInvisibleChars strips zero-width and other invisible Unicode
// characters that survive copy-paste from rich text sources.
func removeInvisibleChars(s string) string {
	invisibleChars := []string{
		"\u200B", // Zero-width space
		"\u200C", // Zero-width non-joiner
		"\u200D", // Zero-width joiner
		"\uFEFF", // Zero-width no-break space (BOM)
		"\u00AD", // Soft hyphen
		"\u2060", // Word joiner
	}

	for _, char := range invisibleChars {
		s = strings.ReplaceAll(s, char, "")
	}
	return s
}
