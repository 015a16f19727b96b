// Package security provides filename sanitization for values that end up
// embedded in output file names.
package security

import "strings"

// SanitizeFilename makes a safe filename fragment from an arbitrary string.
// It replaces any characters that are not ASCII letters, digits, dot,
// underscore or dash with an underscore, collapses repeated underscores and
// trims the result to a reasonable length. The scan identifier is digits by
// construction; this guards a misconfigured label prefix.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}
	var b strings.Builder
	// Limit resulting fragment length to avoid overly long paths
	const maxLen = 128
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
