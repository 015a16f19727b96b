// Package ident extracts the numeric scan identifier embedded in a line.
package ident

import "regexp"

// Scanned payloads embed the identifier as /m/<6-12 digits>/. Everything
// else on the line is ignored.
var (
	embedded = regexp.MustCompile(`/m/([0-9]{6,12})/`)
	bare     = regexp.MustCompile(`^[0-9]{6,12}$`)
)

// Extract searches line for the identifier embedding and returns the digit
// run. The second return is false when the line carries no identifier; this
// is an expected outcome for most scans, not an error. Only the leftmost
// match is ever returned.
func Extract(line string) (string, bool) {
	m := embedded.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Valid reports whether s is a well-formed identifier on its own: 6 to 12
// ASCII digits and nothing else. Used when an identifier arrives outside a
// scanned line, e.g. as a command argument.
func Valid(s string) bool {
	return bare.MatchString(s)
}
